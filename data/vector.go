package data

import "math"

// Vector is a named feature vector in mood space. Operations only consider
// keys present in the receiver, so vectors with mismatched key sets degrade
// to their shared dimensions.
type Vector map[string]float64

func (vec Vector) Distance(other Vector) float64 {
	var terms float64
	for k, v := range vec {
		v2, has := other[k]
		if !has {
			continue
		}
		terms += math.Pow(v-v2, 2)
	}
	return math.Sqrt(terms)
}

func (vec Vector) Add(other Vector) Vector {
	result := make(Vector, len(vec))
	for k, v := range vec {
		result[k] = v + other[k]
	}
	return result
}

func (vec Vector) Scale(factor float64) Vector {
	result := make(Vector, len(vec))
	for k, v := range vec {
		result[k] = v * factor
	}
	return result
}

func (vec Vector) Delta(other Vector) Vector {
	delta := Vector{}
	for k, v := range vec {
		v2, has := other[k]
		if !has {
			continue
		}
		delta[k] = v2 - v
	}
	return delta
}
