package floodfill

// DarkRGB matches pixels whose red, green and blue are all <= limit.
// Alpha is ignored, so a pixel keeps matching after the fill clears it.
func DarkRGB(limit uint8) Predicate {
	return func(r, g, b, _ uint8) bool {
		return r <= limit && g <= limit && b <= limit
	}
}

// Below matches pixels whose red, green and blue are all strictly < limit.
func Below(limit uint8) Predicate {
	return func(r, g, b, _ uint8) bool {
		return r < limit && g < limit && b < limit
	}
}

// BrightRGB matches pixels whose red, green and blue are all > floor.
func BrightRGB(floor uint8) Predicate {
	return func(r, g, b, _ uint8) bool {
		return r > floor && g > floor && b > floor
	}
}

// And matches when every predicate matches.
func And(ps ...Predicate) Predicate {
	return func(r, g, b, a uint8) bool {
		for _, p := range ps {
			if !p(r, g, b, a) {
				return false
			}
		}
		return true
	}
}

// Or matches when any predicate matches.
func Or(ps ...Predicate) Predicate {
	return func(r, g, b, a uint8) bool {
		for _, p := range ps {
			if p(r, g, b, a) {
				return true
			}
		}
		return false
	}
}
