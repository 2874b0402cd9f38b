package progression

// Rules are a title's scoring constants.
type Rules struct {
	Lives          int `yaml:"lives"`
	LevelBonus     int `yaml:"level_bonus"`     // × cleared level
	DefeatBonus    int `yaml:"defeat_bonus"`    // × current level
	SurvivalPoints int `yaml:"survival_points"` // per survival tick, 0 disables
}

// Tracker accumulates the score, level and lives of one run.
type Tracker struct {
	rules Rules
	score int
	level int
	lives int
}

// NewTracker starts a run at level 1 with full lives.
func NewTracker(r Rules) *Tracker {
	t := &Tracker{rules: r}
	t.Reset()
	return t
}

// Reset returns to the initial state.
func (t *Tracker) Reset() {
	t.score = 0
	t.level = 1
	t.lives = t.rules.Lives
}

// Score returns the accumulated score.
func (t *Tracker) Score() int { return t.score }

// Level returns the current level.
func (t *Tracker) Level() int { return t.level }

// Lives returns the lives left.
func (t *Tracker) Lives() int { return t.lives }

// Rules returns the scoring constants the tracker was built with.
func (t *Tracker) Rules() Rules { return t.rules }

// AddPoints adds n points. Negative amounts are ignored so the score never
// falls.
func (t *Tracker) AddPoints(n int) {
	if n > 0 {
		t.score += n
	}
}

// Survive awards the per-tick survival points.
func (t *Tracker) Survive() {
	t.AddPoints(t.rules.SurvivalPoints)
}

// LoseLife removes a life and reports whether the run is over.
func (t *Tracker) LoseLife() bool {
	if t.lives > 0 {
		t.lives--
	}
	return t.lives <= 0
}

// Out reports whether no lives remain.
func (t *Tracker) Out() bool {
	return t.lives <= 0
}

// LevelClearBonus is the bonus for clearing level.
func (r Rules) LevelClearBonus(level int) int {
	return r.LevelBonus * level
}

// DefeatBonusAt is the bonus for defeating an opponent on level.
func (r Rules) DefeatBonusAt(level int) int {
	return r.DefeatBonus * level
}

// ClearLevel awards the clear bonus for the current level and advances to
// the next. It returns the bonus.
func (t *Tracker) ClearLevel() int {
	bonus := t.rules.LevelClearBonus(t.level)
	t.AddPoints(bonus)
	t.level++
	return bonus
}

// Defeat awards the opponent-defeat bonus and returns it.
func (t *Tracker) Defeat() int {
	bonus := t.rules.DefeatBonusAt(t.level)
	t.AddPoints(bonus)
	return bonus
}
