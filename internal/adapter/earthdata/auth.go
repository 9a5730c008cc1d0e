package earthdata

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/bgentry/go-netrc/netrc"
)

// earthdataMachine is the netrc machine entry holding Earthdata credentials.
const earthdataMachine = "urs.earthdata.nasa.gov"

// Credentials holds HTTP basic auth for NASA Earthdata.
type Credentials struct {
	Username string
	Password string
}

// LoadCredentials reads Earthdata credentials from a netrc file. An empty
// path defaults to ~/.netrc. A missing file or a file without an Earthdata
// machine entry returns (nil, nil): credential absence is not an error, the
// acquisition layer degrades to synthetic data.
func LoadCredentials(path string) (*Credentials, error) {
	if path == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("resolve home directory: %w", err)
		}
		path = filepath.Join(home, ".netrc")
	}

	if _, err := os.Stat(path); os.IsNotExist(err) {
		return nil, nil
	}

	rc, err := netrc.ParseFile(path)
	if err != nil {
		return nil, fmt.Errorf("parse netrc %s: %w", path, err)
	}

	machine := rc.FindMachine(earthdataMachine)
	if machine == nil || machine.Login == "" {
		return nil, nil
	}

	return &Credentials{Username: machine.Login, Password: machine.Password}, nil
}
