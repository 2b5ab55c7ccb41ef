package util

func InPlaceFilter[T any](s *[]T, p func(T) bool) {
	i := 0
	for _, e := range *s {
		if p(e) {
			(*s)[i] = e
			i++
		}
	}
	*s = (*s)[:i]
}

// RemoveDuplicates keeps the first occurrence of every item in its original order
func RemoveDuplicates[T comparable](items []T) []T {
	present := make(map[T]bool)
	list := []T{}

	for _, item := range items {
		if !present[item] {
			present[item] = true
			list = append(list, item)
		}
	}

	return list
}
