package resources

// FallbackFacilities returns national helplines shown when no local
// facility could be found.
func FallbackFacilities() []Facility {
	return []Facility{
		{
			Name:    "KIRAN Mental Health Helpline (India)",
			Address: "Available nationwide - 24x7 Support",
			Phone:   "1800-599-0019 (Toll-free)",
			Website: "https://kiran.nimhans.ac.in",
		},
		{
			Name:    "Vandrevala Foundation Helpline",
			Address: "India - 24x7 Free Counseling",
			Phone:   "9999 666 555",
			Website: "https://www.vandrevalafoundation.com",
		},
		{
			Name:    "National Institute of Mental Health and Neurosciences (NIMHANS)",
			Address: "Hosur Road, Bengaluru, Karnataka 560029",
			Phone:   "080-2699-5000",
			Website: "https://www.nimhans.ac.in",
		},
		{
			Name:    "Suicide Prevention India Foundation",
			Address: "Available nationwide",
			Phone:   "9820466726",
			Website: "http://www.spif.in",
		},
		{
			Name:    "iCall Psychosocial Helpline",
			Address: "Available nationwide - Mon-Sat 10 AM - 8 PM",
			Phone:   "9152987821",
			Website: "https://icallhelpline.org",
		},
	}
}

// CrisisResources returns immediate crisis helplines, independent of any
// location lookup.
func CrisisResources() []Helpline {
	return []Helpline{
		{
			Name:        "KIRAN Mental Health Helpline (India)",
			Phone:       "1800-599-0019",
			Description: "24x7 toll-free mental health support line.",
		},
		{
			Name:        "Vandrevala Foundation Helpline",
			Phone:       "9999 666 555",
			Description: "Free mental health counselling service across India.",
		},
		{
			Name:        "Suicide Prevention India Foundation",
			Phone:       "9820466726",
			Description: "Suicide prevention and mental health support.",
		},
		{
			Name:        "Emergency Services (India)",
			Phone:       "100",
			Description: "Police emergency helpline.",
		},
		{
			Name:        "Medical Emergency (India)",
			Phone:       "108",
			Description: "Ambulance and medical emergency helpline.",
		},
		{
			Name:        "National Suicide Prevention Lifeline (US)",
			Phone:       "988",
			Description: "24/7 confidential support for people in distress.",
		},
	}
}
