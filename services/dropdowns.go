package services

// CategoryOptions returns the list of catalog item categories.
var CategoryOptions = []string{
	CategoryKitchen,
	CategoryCloset,
	CategoryBathroom,
	CategoryLiving,
	CategoryOther,
}

// ColorOptions returns the list of color choices offered on forms.
var ColorOptions = []string{
	"white",
	"wengue",
	"walnut",
	"two_tone",
	"high_glow",
}

// MaterialOptions returns the list of board material choices.
var MaterialOptions = []string{
	"melamine",
	"mdf",
	"plywood",
	"solid_wood",
}

// CountertopOptions returns the list of countertop choices.
var CountertopOptions = []string{
	"laminate",
	"granite",
	"quartz",
	"marble",
}

// ScopeOptions returns the allocation scope values accepted on real-cost
// records.
var ScopeOptions = []string{
	string(ScopePerUnit),
	string(ScopePartial),
	string(ScopeTotal),
}
