package core

// MaxAttempts bounds how many shuffles the generator tries before falling back.
const MaxAttempts = 10

// Result describes the outcome of level generation.
type Result struct {
	Layout   Layout
	Attempts int  // Shuffles tried, including the accepted one
	Fallback bool // True when the sorted layout was returned
}

// GenerateLayout returns the layout for cfg. It never fails; see Generate.
func GenerateLayout(cfg LevelConfig) Layout {
	return Generate(cfg).Layout
}

// Generate shuffles capacity copies of each color into filled tubes and
// appends the empty tubes. Candidates must pass Accept. All attempts draw
// from one generator seeded from cfg.Seed, so retries see fresh shuffles.
// After MaxAttempts rejections the already-solved SortedLayout is returned.
func Generate(cfg LevelConfig) Result {
	cfg = cfg.Normalize()
	rng := NewLCG(cfg.Seed)

	for attempt := 1; attempt <= MaxAttempts; attempt++ {
		layout := shuffledLayout(cfg, rng)
		if Accept(layout, cfg) == nil {
			return Result{Layout: layout, Attempts: attempt}
		}
	}

	return Result{Layout: SortedLayout(cfg), Attempts: MaxAttempts, Fallback: true}
}

// shuffledLayout draws one candidate from rng.
func shuffledLayout(cfg LevelConfig, rng *LCG) Layout {
	units := make([]Color, 0, cfg.Colors*cfg.Capacity)
	for _, c := range Palette(cfg.Colors) {
		for i := 0; i < cfg.Capacity; i++ {
			units = append(units, c)
		}
	}
	rng.Shuffle(units)

	layout := make(Layout, 0, cfg.TubeCount())
	for i := 0; i < cfg.Colors; i++ {
		chunk := units[i*cfg.Capacity : (i+1)*cfg.Capacity]
		layout = append(layout, append(Tube{}, chunk...))
	}
	for i := 0; i < cfg.ExtraEmpty; i++ {
		layout = append(layout, Tube{})
	}
	return layout
}

// SortedLayout returns the solved layout: one full tube per color plus the empty tubes.
func SortedLayout(cfg LevelConfig) Layout {
	cfg = cfg.Normalize()
	layout := make(Layout, 0, cfg.TubeCount())
	for _, c := range Palette(cfg.Colors) {
		t := make(Tube, cfg.Capacity)
		for i := range t {
			t[i] = c
		}
		layout = append(layout, t)
	}
	for i := 0; i < cfg.ExtraEmpty; i++ {
		layout = append(layout, Tube{})
	}
	return layout
}
