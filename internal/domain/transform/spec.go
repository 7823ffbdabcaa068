package transform

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
)

// Spec is a declarative set of transformation operations. Every group is
// optional, but a spec with no groups at all is invalid: an empty request
// is a client error, not a no-op.
type Spec struct {
	Resize    *Resize    `json:"resize,omitempty"`
	Crop      *Crop      `json:"crop,omitempty"`
	Rotate    *Rotate    `json:"rotate,omitempty"`
	Flip      *bool      `json:"flip,omitempty"`
	Mirror    *bool      `json:"mirror,omitempty"`
	Filters   *Filters   `json:"filters,omitempty"`
	Compress  *Compress  `json:"compress,omitempty"`
	Format    string     `json:"format,omitempty" validate:"omitempty,oneof=jpeg jpg png webp avif"`
	Watermark *Watermark `json:"watermark,omitempty"`
}

type Resize struct {
	Width  int    `json:"width" validate:"gt=0"`
	Height int    `json:"height" validate:"gt=0"`
	Fit    string `json:"fit" validate:"oneof=cover contain fill inside outside"`
}

type Crop struct {
	Width  int `json:"width" validate:"gt=0"`
	Height int `json:"height" validate:"gt=0"`
	X      int `json:"x" validate:"gte=0"`
	Y      int `json:"y" validate:"gte=0"`
}

type Rotate struct {
	Degrees int `json:"degrees"`
}

type Filters struct {
	Grayscale bool `json:"grayscale"`
	Sepia     bool `json:"sepia"`
}

type Compress struct {
	Quality int `json:"quality" validate:"min=1,max=100"`
}

type Watermark struct {
	Text     string `json:"text" validate:"required"`
	Position string `json:"position" validate:"oneof=north northeast east southeast south southwest west northwest center"`
	FontSize int    `json:"fontSize" validate:"min=12,max=96"`
	Opacity  int    `json:"opacity" validate:"min=10,max=100"`
}

// DefaultQuality is the encoding quality applied when the spec carries no
// compress group.
const DefaultQuality = 80

// IsSupportedFormat reports whether format belongs to the closed set of
// encodable output formats.
func IsSupportedFormat(format string) bool {
	switch format {
	case "jpeg", "jpg", "png", "webp", "avif":
		return true
	}
	return false
}

// InvalidSpecError reports the first violated constraint of a
// transformation spec.
type InvalidSpecError struct {
	Field  string
	Reason string
}

func (e *InvalidSpecError) Error() string {
	return fmt.Sprintf("invalid transformation spec: %s %s", e.Field, e.Reason)
}

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

// Validate checks every present group against its field constraints and
// rejects a spec with no groups at all.
func (s Spec) Validate() error {
	if s.isEmpty() {
		return &InvalidSpecError{Field: "transformations", Reason: "must contain at least one operation"}
	}
	if err := validate.Struct(s); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) && len(verrs) > 0 {
			return toInvalidSpecError(verrs[0])
		}
		return err
	}
	return nil
}

func (s Spec) isEmpty() bool {
	return s.Resize == nil &&
		s.Crop == nil &&
		s.Rotate == nil &&
		s.Flip == nil &&
		s.Mirror == nil &&
		s.Filters == nil &&
		s.Compress == nil &&
		s.Format == "" &&
		s.Watermark == nil
}

func toInvalidSpecError(fe validator.FieldError) *InvalidSpecError {
	field := strings.TrimPrefix(fe.Namespace(), "Spec.")

	var reason string
	switch fe.Tag() {
	case "required":
		reason = "is required"
	case "gt":
		reason = fmt.Sprintf("must be greater than %s", fe.Param())
	case "gte", "min":
		reason = fmt.Sprintf("must be at least %s", fe.Param())
	case "max":
		reason = fmt.Sprintf("must be at most %s", fe.Param())
	case "oneof":
		reason = fmt.Sprintf("must be one of [%s]", fe.Param())
	default:
		reason = fmt.Sprintf("violates %q constraint", fe.Tag())
	}

	return &InvalidSpecError{Field: field, Reason: reason}
}
