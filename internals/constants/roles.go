package constants

// Profile tiers. A guest becomes a devotee once a mentor approves their
// request; mentors are promoted out-of-band by staff.
const (
	UserTypeGuest   = "guest"
	UserTypeDevotee = "devotee"
	UserTypeMentor  = "mentor"
)
