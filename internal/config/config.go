package config

const (
	WindowWidth  = 1280
	WindowHeight = 720

	VisualRingSize  = 8192
	SmoothingFactor = 0.6
	EnergyBands     = 64

	// HUD layout
	SwatchSize = 18
	SwatchGap  = 6
	HUDMargin  = 12

	// Frame timing
	ReferenceFPS  = 60.0
	MaxFrameDelta = 0.25

	// Population sizes
	FlowLayerCount   = 4
	AuraCount        = 3
	ParticleMin      = 180
	ParticleSpan     = 160
	BurstMin         = 12
	BurstSpan        = 8
	StrandMin        = 6
	StrandSpan       = 7
	StrandPointsMin  = 3
	StrandPointsSpan = 4

	// Virtual canvas margin in normalized units
	BoundsMin = -0.2
	BoundsMax = 1.2

	// Tempo
	TempoMin       = 0.25
	TempoMax       = 3.2
	TempoFloor     = 0.05
	TempoEaseRate  = 0.8
	TempoWheelGain = 0.12

	// Pointer
	PointerStrengthStep  = 0.35
	PointerStrengthMax   = 2.0
	PointerDecayRate     = 0.35
	PointerFalloff       = 12.0
	PointerDeflection    = 0.35
	PointerWheelBoost    = 0.15
	ActivityStrengthGain = 0.5
	ActivityRhythmGain   = 0.25

	// Mutation scheduler
	MutationIntervalMin   = 5.0
	MutationIntervalMax   = 14.0
	ParticlePerturbShare  = 0.12
	BurstPerturbThreshold = 0.35
	PaletteShiftThreshold = 0.55
	BurstSpawnThreshold   = 0.7
	BurstFloor            = 16
	BurstCap              = 28
	TransitionSpeedMin    = 0.15
	TransitionSpeedMax    = 0.35

	// Trail fade
	TrailFade = 0.12
)
