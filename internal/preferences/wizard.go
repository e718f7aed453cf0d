package preferences

// Step identifies a page of the onboarding wizard.
type Step int

const (
	StepGoal Step = iota + 1
	StepDiet
	StepIngredients
)

// StepCount is the number of wizard pages.
const StepCount = 3

// Wizard holds the answers collected so far. Going back never clears an
// answer. Once Complete succeeds the wizard is closed and every mutator
// returns ErrWizardClosed.
type Wizard struct {
	step        Step
	goal        Goal
	dietary     map[string]bool
	ingredients string
	closed      bool
}

// NewWizard returns a wizard positioned on the goal step.
func NewWizard() *Wizard {
	return &Wizard{
		step:    StepGoal,
		dietary: make(map[string]bool),
	}
}

// Step returns the current page.
func (w *Wizard) Step() Step { return w.step }

// Closed reports whether the wizard already produced its record.
func (w *Wizard) Closed() bool { return w.closed }

// Goal returns the selected goal, empty when none was chosen.
func (w *Wizard) Goal() Goal { return w.goal }

// SelectGoal records the single goal choice.
func (w *Wizard) SelectGoal(g Goal) error {
	if w.closed {
		return ErrWizardClosed
	}
	if !g.Valid() {
		return ErrUnknownGoal
	}
	w.goal = g
	return nil
}

// CanContinue reports whether the forward action is enabled on the current
// page. Only the goal page has a requirement.
func (w *Wizard) CanContinue() bool {
	if w.closed {
		return false
	}
	if w.step == StepGoal {
		return w.goal != ""
	}
	return true
}

// Next moves to the following page. On the last page use Complete instead.
func (w *Wizard) Next() error {
	if w.closed {
		return ErrWizardClosed
	}
	if !w.CanContinue() {
		return ErrGoalRequired
	}
	if w.step == StepIngredients {
		return ErrNoNextStep
	}
	w.step++
	return nil
}

// Back moves to the previous page keeping every answer.
func (w *Wizard) Back() error {
	if w.closed {
		return ErrWizardClosed
	}
	if w.step == StepGoal {
		return ErrNoPreviousStep
	}
	w.step--
	return nil
}

// ToggleDiet adds the tag when absent and removes it when present. It
// returns whether the tag is selected afterwards.
func (w *Wizard) ToggleDiet(tag string) (bool, error) {
	if w.closed {
		return false, ErrWizardClosed
	}
	if !IsDietaryTag(tag) {
		return false, ErrUnknownDietaryTag
	}
	if w.dietary[tag] {
		delete(w.dietary, tag)
		return false, nil
	}
	w.dietary[tag] = true
	return true, nil
}

// DietSelected reports whether tag is currently selected.
func (w *Wizard) DietSelected(tag string) bool { return w.dietary[tag] }

// DietaryPreferences returns the selected tags in vocabulary order.
func (w *Wizard) DietaryPreferences() []string { return orderedTags(w.dietary) }

// StartsFromScratch reports whether the "start from scratch" box is checked.
func (w *Wizard) StartsFromScratch() bool { return w.ingredients == StartFromScratch }

// SetStartFromScratch checks or unchecks the "start from scratch" box.
// Checking replaces any typed text with the sentinel; unchecking leaves an
// empty text field, the typed text is not restored.
func (w *Wizard) SetStartFromScratch(on bool) error {
	if w.closed {
		return ErrWizardClosed
	}
	if on {
		w.ingredients = StartFromScratch
	} else {
		w.ingredients = ""
	}
	return nil
}

// SetIngredients stores the free text answer verbatim. It is ignored while
// the sentinel is active since the text box is hidden then.
func (w *Wizard) SetIngredients(text string) error {
	if w.closed {
		return ErrWizardClosed
	}
	if w.StartsFromScratch() {
		return nil
	}
	w.ingredients = text
	return nil
}

// IngredientsText returns the content of the free text box, empty while the
// sentinel is active.
func (w *Wizard) IngredientsText() string {
	if w.StartsFromScratch() {
		return ""
	}
	return w.ingredients
}

// Complete bundles the answers into a UserPreferences record. It is the
// action of the ingredients page and succeeds at most once.
func (w *Wizard) Complete() (UserPreferences, error) {
	if w.closed {
		return UserPreferences{}, ErrWizardClosed
	}
	if w.goal == "" {
		return UserPreferences{}, ErrGoalRequired
	}
	if w.step != StepIngredients {
		return UserPreferences{}, ErrNotLastStep
	}
	prefs, err := New(w.goal, w.DietaryPreferences(), w.ingredients)
	if err != nil {
		return UserPreferences{}, err
	}
	w.closed = true
	return prefs, nil
}
