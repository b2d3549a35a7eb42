package lights

// LightSampler chooses one emitter for next-event estimation
type LightSampler interface {
	// SampleLight selects an emitter and returns it with its selection probability and index
	SampleLight(u float64) (Emitter, float64, int)

	// Probability returns the probability that SampleLight selects emitter
	Probability(emitter Emitter) float64
}

// UniformLightSampler picks every emitter with equal probability
type UniformLightSampler struct {
	emitters []Emitter
}

// NewUniformLightSampler creates a uniform sampler over the given emitters
func NewUniformLightSampler(emitters []Emitter) *UniformLightSampler {
	return &UniformLightSampler{emitters: emitters}
}

// SampleLight maps u in [0,1) to an emitter index
func (s *UniformLightSampler) SampleLight(u float64) (Emitter, float64, int) {
	n := len(s.emitters)
	if n == 0 {
		return nil, 0, -1
	}

	index := int(u * float64(n))
	if index >= n {
		index = n - 1
	}
	if index < 0 {
		index = 0
	}
	return s.emitters[index], 1.0 / float64(n), index
}

// Probability is 1/N for every emitter; emitters are not looked up
func (s *UniformLightSampler) Probability(emitter Emitter) float64 {
	if len(s.emitters) == 0 || emitter == nil {
		return 0
	}
	return 1.0 / float64(len(s.emitters))
}
