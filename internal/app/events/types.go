package events

// Optional is a tri-state field used to distinguish omitted, null, and valued
// update fields.
type Optional[T any] struct {
	specified bool
	isNull    bool
	value     T
}

func Unspecified[T any]() Optional[T] { return Optional[T]{} }
func Null[T any]() Optional[T]        { return Optional[T]{specified: true, isNull: true} }
func Some[T any](v T) Optional[T]     { return Optional[T]{specified: true, value: v} }

func (o Optional[T]) IsSpecified() bool { return o.specified }
func (o Optional[T]) IsNull() bool      { return o.specified && o.isNull }
func (o Optional[T]) Value() T          { return o.value }

type CreateEventInput struct {
	ID          int64
	Name        string
	Date        string
	Time        string
	Location    string
	Description string
	ClubID      int64
}

// UpdateEventInput fields cannot be null; omitted fields are left unchanged.
type UpdateEventInput struct {
	Name        Optional[string]
	Date        Optional[string]
	Time        Optional[string]
	Location    Optional[string]
	Description Optional[string]
}
