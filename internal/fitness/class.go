package fitness

// NewFitnessClass creates a class with no trainer and no enrollments.
func NewFitnessClass(id, name string, capacity int, schedule string) *FitnessClass {
	return &FitnessClass{
		ID:       id,
		Name:     name,
		Capacity: capacity,
		Schedule: schedule,
	}
}

// EnrollMember takes a seat for m. It fails without side effects when the
// class is full or m is already enrolled. The member's own bookings are
// not touched.
func (c *FitnessClass) EnrollMember(m *Member) bool {
	if c.Full() || c.enrolledIndex(m.ID) >= 0 {
		return false
	}
	c.enrolled = append(c.enrolled, m)
	return true
}

// CancelBooking releases m's seat.
func (c *FitnessClass) CancelBooking(m *Member) bool {
	i := c.enrolledIndex(m.ID)
	if i < 0 {
		return false
	}
	c.enrolled = append(c.enrolled[:i], c.enrolled[i+1:]...)
	return true
}

// AssignTrainer sets the class trainer, replacing any previous one.
func (c *FitnessClass) AssignTrainer(t *Trainer) {
	c.trainer = t
}

// Trainer returns the assigned trainer, or nil.
func (c *FitnessClass) Trainer() *Trainer {
	return c.trainer
}

// CurrentEnrollments is the number of seats taken.
func (c *FitnessClass) CurrentEnrollments() int {
	return len(c.enrolled)
}

// Full reports whether every seat is taken.
func (c *FitnessClass) Full() bool {
	return len(c.enrolled) >= c.Capacity
}

// IsEnrolled reports whether a member with memberID holds a seat.
func (c *FitnessClass) IsEnrolled(memberID string) bool {
	return c.enrolledIndex(memberID) >= 0
}

// EnrolledMembers returns the enrolled members in enrollment order.
func (c *FitnessClass) EnrolledMembers() []*Member {
	return append([]*Member(nil), c.enrolled...)
}

func (c *FitnessClass) enrolledIndex(memberID string) int {
	for i, m := range c.enrolled {
		if m.ID == memberID {
			return i
		}
	}
	return -1
}
