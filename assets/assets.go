package assets

import _ "embed"

// DefaultDataset is the bundled weather dataset served when no dataset path
// is configured.
//
//go:embed seattle-weather.csv
var DefaultDataset []byte
