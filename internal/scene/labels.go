package scene

// Labels are the literal strings drawn over the animation.
type Labels struct {
	Target         string `yaml:"target"`
	HeaderPrefix   string `yaml:"header_prefix"`
	IdentifyTitle  string `yaml:"identify_title"`
	IdentifyDetail string `yaml:"identify_detail"`
	ScanTitle      string `yaml:"scan_title"`
	ScanDetail     string `yaml:"scan_detail"`
	CloudTitle     string `yaml:"cloud_title"`
	CloudDetail    string `yaml:"cloud_detail"`
	FinalTitle     string `yaml:"final_title"`
	FinalDetail    string `yaml:"final_detail"`
}

// DefaultLabels returns the English label set.
func DefaultLabels() Labels {
	return Labels{
		Target:         "Smart speaker",
		HeaderPrefix:   "Target: ",
		IdentifyTitle:  "0. Identify and segment",
		IdentifyDetail: "Pick the target out of the scene",
		ScanTitle:      "1. Multi-angle video scan",
		ScanDetail:     "Orbit capture (top / middle / bottom)",
		CloudTitle:     "2. Solve / reconstruct",
		CloudDetail:    "Sparse point cloud -> dense solid",
		FinalTitle:     "3. Generate 3D model",
		FinalDetail:    "Reconstruction complete",
	}
}

func (l Labels) forPhase(p Phase) (title, detail string) {
	switch p {
	case PhaseIdentify:
		return l.IdentifyTitle, l.IdentifyDetail
	case PhaseScan:
		return l.ScanTitle, l.ScanDetail
	case PhasePointCloud:
		return l.CloudTitle, l.CloudDetail
	default:
		return l.FinalTitle, l.FinalDetail
	}
}
