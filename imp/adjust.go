package imp

// MinLevel and MaxLevel bound every threshold handed to the engine.
const (
	MinLevel = 0
	MaxLevel = 255
)

// ClampLevel brings a threshold back into [MinLevel, MaxLevel].
func ClampLevel(level int) int {
	if level < MinLevel {
		return MinLevel
	}
	if level > MaxLevel {
		return MaxLevel
	}
	return level
}

// intensity is the plain average of the three color channels.
func intensity(r, g, b uint8) float64 {
	return float64(channelSum(r, g, b)) / 3
}

func channelSum(r, g, b uint8) uint32 {
	return uint32(r) + uint32(g) + uint32(b)
}
