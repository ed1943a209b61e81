package domain

// MajorityAge is the age from which a user counts as of age.
const MajorityAge = 18

type UserID int

type User struct {
	ID   UserID `json:"id"`
	Name string `json:"name"`
	Age  int    `json:"age"`
}

func (u User) IsOfAge() bool {
	return u.Age >= MajorityAge
}

// UserResponse is the read view of a User. IsOfAge is derived on every
// read and never stored.
type UserResponse struct {
	ID      UserID `json:"id"`
	Name    string `json:"name"`
	Age     int    `json:"age"`
	IsOfAge bool   `json:"isOfAge"`
}

func NewUserResponse(u User) UserResponse {
	return UserResponse{
		ID:      u.ID,
		Name:    u.Name,
		Age:     u.Age,
		IsOfAge: u.IsOfAge(),
	}
}

func NewUserResponses(us []User) []UserResponse {
	out := make([]UserResponse, 0, len(us))
	for _, u := range us {
		out = append(out, NewUserResponse(u))
	}
	return out
}
