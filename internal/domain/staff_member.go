package domain

// StaffMember models one rateable employee on the roster.
type StaffMember struct {
	ID        string
	Name      string
	Role      string
	AvatarURL string
}

// SeedRoster returns the staff members present before any import.
func SeedRoster() []StaffMember {
	return []StaffMember{
		{
			ID:        "e1",
			Name:      "Hiếu Hiếu",
			Role:      "Phục vụ",
			AvatarURL: "https://images.unsplash.com/photo-1520975916090-3105956dac38?q=80&w=512&auto=format&fit=crop",
		},
		{
			ID:        "e2",
			Name:      "Hòa Hòa",
			Role:      "Phục vụ",
			AvatarURL: "https://images.unsplash.com/photo-1524504388940-b1c1722653e1?q=80&w=512&auto=format&fit=crop",
		},
		{
			ID:        "e3",
			Name:      "Hồng Nhung",
			Role:      "Thu ngân",
			AvatarURL: "https://images.unsplash.com/photo-1527980965255-d3b416303d12?q=80&w=512&auto=format&fit=crop",
		},
		{
			ID:        "e4",
			Name:      "Minh Nguyễn",
			Role:      "Phục vụ",
			AvatarURL: "https://images.unsplash.com/photo-1544005313-94ddf0286df2?q=80&w=512&auto=format&fit=crop",
		},
		{
			ID:        "e5",
			Name:      "Ly Ly",
			Role:      "Phục vụ",
			AvatarURL: "https://images.unsplash.com/photo-1544005313-94ddf0286df2?q=80&w=512&auto=format&fit=crop",
		},
		{
			ID:        "e6",
			Name:      "Như Như",
			Role:      "Phục vụ",
			AvatarURL: "https://images.unsplash.com/photo-1544005313-94ddf0286df2?q=80&w=512&auto=format&fit=crop",
		},
	}
}
