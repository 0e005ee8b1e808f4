package order

import "fmt"

// parseEnum maps a wire name to its index in names. Index 0 is reserved for
// "not set" and matches only the empty string.
func parseEnum[T ~uint8](names []string, kind, val string) (T, error) {
	if val == "" {
		return 0, nil
	}

	for i := 1; i < len(names); i++ {
		if names[i] == val {
			return T(i), nil
		}
	}

	return 0, fmt.Errorf("unknown %s [%s]", kind, val)
}

func enumName(names []string, kind string, idx uint8) (string, error) {
	if int(idx) >= len(names) {
		return "", fmt.Errorf("unknown %s (%d)", kind, idx)
	}

	return names[idx], nil
}
