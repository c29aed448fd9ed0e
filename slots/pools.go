package slots

// DefaultWords is the built-in word pool. Treated as read-only; New copies it.
var DefaultWords = Pool{
	"lighthouse",
	"marmalade",
	"thunderstorm",
	"compass",
	"wolf",
	"carousel",
	"ink",
	"glacier",
	"violin",
	"locksmith",
	"ember",
	"meteor",
	"greenhouse",
	"anchor",
	"labyrinth",
	"postcard",
	"clockwork",
	"driftwood",
	"lantern",
	"sparrow",
	"velvet",
	"harvest",
	"mirror",
	"tide",
	"orchard",
	"static",
	"honey",
	"avalanche",
	"telescope",
	"raincoat",
	"cathedral",
	"whistle",
	"fossil",
	"parade",
	"smoke",
	"pillow",
	"archive",
	"comet",
	"kettle",
	"wilderness",
}

// DefaultConstraints is the built-in constraint pool.
var DefaultConstraints = Pool{
	"without using the letter 'e'",
	"in exactly six words",
	"told entirely in dialogue",
	"from the villain's point of view",
	"set one minute before a disaster",
	"in second person",
	"as a letter that was never sent",
	"where the narrator is lying",
	"using only questions",
	"set in a place with no names",
	"where time runs backwards",
	"as an overheard phone call",
	"in the style of a recipe",
	"where the weather is a character",
	"ending mid-sentence",
}
