package request

import (
	"github.com/pixelvault/pixelvault/internal/domain/transform"
)

type TransformRequest struct {
	Transformations transform.Spec `json:"transformations"`
}
