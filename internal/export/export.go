package export

import "github.com/drakos74/free-spline/internal/model"

// Source is a fitted surface set that can be exported.
type Source interface {
	Len() int
	Samples() model.Samples
	Control(surf int) model.Grid
	Value(surf int, u, v float64) model.Point
}
