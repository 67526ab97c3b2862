package data

var Sinbundang = Line{
	Name:  "Sinbundang",
	Color: "bg-red-600",
	Sections: []Section{
		{Up: "Yangjae", Down: "Yangjae Citizen's Forest", Distance: 16},
		{Up: "Sinsa", Down: "Nonhyeon", Distance: 9},
		{Up: "Gangnam", Down: "Yangjae", Distance: 13},
		{Up: "Nonhyeon", Down: "Sinnonhyeon", Distance: 7},
		{Up: "Sinnonhyeon", Down: "Gangnam", Distance: 8},
	},
}

var Line2 = Line{
	Name:  "Line 2",
	Color: "bg-green-600",
	Sections: []Section{
		{Up: "Seolleung", Down: "Samseong", Distance: 8},
		{Up: "Gangnam", Down: "Yeoksam", Distance: 8},
		{Up: "Samseong", Down: "Sports Complex", Distance: 15},
		{Up: "Gyodae", Down: "Gangnam", Distance: 12},
		{Up: "Yeoksam", Down: "Seolleung", Distance: 9},
		{Up: "Sports Complex", Down: "Jamsil Saenae", Distance: 12},
	},
}
