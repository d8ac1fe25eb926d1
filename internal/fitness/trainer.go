package fitness

// NewTrainer creates a trainer with an empty schedule.
func NewTrainer(id, name, specialization string) *Trainer {
	return &Trainer{
		ID:             id,
		Name:           name,
		Specialization: specialization,
	}
}

// AssignClass adds c to the trainer's schedule. It does not set the class's
// trainer; see FitnessClass.AssignTrainer.
func (t *Trainer) AssignClass(c *FitnessClass) bool {
	if t.classIndex(c.ID) >= 0 {
		return false
	}
	t.classes = append(t.classes, c)
	return true
}

// ViewSchedule returns the assigned classes in assignment order.
func (t *Trainer) ViewSchedule() []*FitnessClass {
	return append([]*FitnessClass(nil), t.classes...)
}

func (t *Trainer) unassignClass(classID string) bool {
	i := t.classIndex(classID)
	if i < 0 {
		return false
	}
	t.classes = append(t.classes[:i], t.classes[i+1:]...)
	return true
}

func (t *Trainer) classIndex(classID string) int {
	for i, c := range t.classes {
		if c.ID == classID {
			return i
		}
	}
	return -1
}
