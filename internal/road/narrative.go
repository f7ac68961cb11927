package road

// RejectionText is shown when the player runs into an obstacle.
const RejectionText = "The path rejects you"

// NarrativePool is the fixed set of choice triples.
var NarrativePool = []NarrativeTexts{
	{Left: "Lift the fallen", Center: "Hold the formation", Right: "Take their rations"},
	{Left: "Share the water", Center: "March in silence", Right: "Drink your fill"},
	{Left: "Bury the dead", Center: "Ignore the ghosts", Right: "Loot the bodies"},
	{Left: "Remember them", Center: "Focus forward", Right: "Forget the weak"},
}
