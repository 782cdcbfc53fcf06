package logging

import "time"

// Common field constructors
func String(key, value string) Field {
	return Field{Key: key, Value: value}
}

func Int(key string, value int) Field {
	return Field{Key: key, Value: value}
}

func Uint64(key string, value uint64) Field {
	return Field{Key: key, Value: value}
}

func Float64(key string, value float64) Field {
	return Field{Key: key, Value: value}
}

func Bool(key string, value bool) Field {
	return Field{Key: key, Value: value}
}

func Duration(key string, value time.Duration) Field {
	return Field{Key: key, Value: value.String()}
}

func Error(err error) Field {
	if err == nil {
		return Field{Key: "error", Value: nil}
	}
	return Field{Key: "error", Value: err.Error()}
}

func Any(key string, value any) Field {
	return Field{Key: key, Value: value}
}

// Engine field helpers

func Component(name string) Field {
	return String("component", name)
}

func Mode(mode string) Field {
	return String("mode", mode)
}

func NodeCount(n int) Field {
	return Int("node_count", n)
}

func Attractors(n int) Field {
	return Int("attractors", n)
}

func StatesExplored(n uint64) Field {
	return Uint64("states_explored", n)
}

func Iterations(n int) Field {
	return Int("iterations", n)
}

func Latency(d time.Duration) Field {
	return Duration("latency", d)
}

func AnalysisID(id string) Field {
	return String("analysis_id", id)
}
