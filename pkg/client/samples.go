package client

// Fixed sample dataset used while the backend is offline. Shapes match the
// live API so rendering code cannot tell the difference.
var sampleNotes = []Note{
	{
		ID:           "sample-1",
		Branch:       "Civil",
		Subject:      "Fluid Mechanics",
		Topic:        "Bernoulli's Principle",
		Description:  "Derivation and pipe-flow applications",
		FilePath:     "uploads/samples/fluid-mechanics-bernoulli.pdf",
		OriginalName: "fluid-mechanics-bernoulli.pdf",
		UploadDate:   "2026-05-11T09:30:00Z",
	},
	{
		ID:           "sample-2",
		Branch:       "Computer Science",
		Subject:      "Data Structures",
		Topic:        "Balanced Binary Trees",
		Description:  "AVL rotations with worked insertions",
		FilePath:     "uploads/samples/data-structures-avl.pdf",
		OriginalName: "data-structures-avl.pdf",
		UploadDate:   "2026-05-09T14:05:00Z",
	},
	{
		ID:           "sample-3",
		Branch:       "Electrical",
		Subject:      "Circuit Theory",
		Topic:        "Thevenin Equivalents",
		Description:  "Reduction steps for multi-source networks",
		FilePath:     "uploads/samples/circuit-theory-thevenin.pdf",
		OriginalName: "circuit-theory-thevenin.pdf",
		UploadDate:   "2026-05-02T11:45:00Z",
	},
	{
		ID:           "sample-4",
		Branch:       "Mechanical",
		Subject:      "Thermodynamics",
		Topic:        "Rankine Cycle",
		Description:  "Efficiency analysis with reheat",
		FilePath:     "uploads/samples/thermodynamics-rankine.pdf",
		OriginalName: "thermodynamics-rankine.pdf",
		UploadDate:   "2026-04-27T16:20:00Z",
	},
	{
		ID:           "sample-5",
		Branch:       "Electronics",
		Subject:      "Digital Logic",
		Topic:        "Karnaugh Maps",
		FilePath:     "uploads/samples/digital-logic-kmaps.pdf",
		OriginalName: "digital-logic-kmaps.pdf",
		UploadDate:   "2026-04-20T08:10:00Z",
	},
}

// SampleNotes returns a copy so callers cannot mutate the fixtures.
func SampleNotes() []Note {
	out := make([]Note, len(sampleNotes))
	copy(out, sampleNotes)
	return out
}
