package pipeline

// Cell is either a Scalar or a Seq of cells.
type Cell interface {
	isCell()
}

type Scalar string

type Seq []Cell

func (Scalar) isCell() {}
func (Seq) isCell()    {}

// SeqOf wraps parsed values as a nested cell.
func SeqOf(values []string) Seq {
	out := make(Seq, len(values))
	for i, v := range values {
		out[i] = Scalar(v)
	}
	return out
}

// Flatten walks cells depth first and returns their scalars in order.
func Flatten(cells ...Cell) []string {
	var out []string
	var walk func(Cell)
	walk = func(c Cell) {
		switch v := c.(type) {
		case Scalar:
			out = append(out, string(v))
		case Seq:
			for _, child := range v {
				walk(child)
			}
		}
	}
	for _, c := range cells {
		walk(c)
	}
	return out
}
