//go:build !tinygo

// Command mkeeprom writes an EEPROM image holding a saved game, for the host runner or for
// flashing next to the firmware. It can also print the game stored in an image.
package main

import (
	"flag"
	"fmt"
	"io"
	"os"
	"strings"

	"points/firmware/persist"
	"points/firmware/score"

	"gopkg.in/yaml.v3"
)

const defaultImagePath = "points.eeprom"

// rosterFile is the YAML form of a saved game.
type rosterFile struct {
	Names  []string `yaml:"names"`
	Points []uint16 `yaml:"points"`
	// Start is used for players without an entry in Points.
	Start uint16 `yaml:"start"`
}

func main() {
	var outPath string
	var rosterPath string
	var names string
	var start uint
	var size uint
	var dump string
	flag.StringVar(&outPath, "out", defaultImagePath, "Output EEPROM image path.")
	flag.StringVar(&rosterPath, "roster", "", "YAML roster file (names, points, start).")
	flag.StringVar(&names, "names", "", "Comma separated player names, used when -roster is not set.")
	flag.UintVar(&start, "start", 20, "Starting points for every player.")
	flag.UintVar(&size, "size", defaultImageSize, "EEPROM image size (bytes).")
	flag.StringVar(&dump, "dump", "", "Print the saved game in this image and exit.")
	flag.Parse()

	if dump != "" {
		if err := dumpImage(os.Stdout, dump); err != nil {
			fmt.Fprintln(os.Stderr, "error:", err)
			os.Exit(1)
		}
		return
	}

	r := rosterFile{Start: uint16(start)}
	if rosterPath != "" {
		var err error
		if r, err = readRoster(rosterPath, uint16(start)); err != nil {
			fmt.Fprintln(os.Stderr, "error:", err)
			os.Exit(1)
		}
	} else {
		for _, n := range strings.Split(names, ",") {
			if n = strings.TrimSpace(n); n != "" {
				r.Names = append(r.Names, n)
			}
		}
	}
	if len(r.Names) == 0 {
		fmt.Fprintln(os.Stderr, "error: -names or -roster is required")
		os.Exit(2)
	}

	if err := run(r, outPath, uint32(size)); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}

func readRoster(path string, start uint16) (rosterFile, error) {
	r := rosterFile{Start: start}
	data, err := os.ReadFile(path)
	if err != nil {
		return r, fmt.Errorf("read roster %q: %w", path, err)
	}
	if err := yaml.Unmarshal(data, &r); err != nil {
		return r, fmt.Errorf("parse roster %q: %w", path, err)
	}
	return r, nil
}

// buildModel turns a roster into the model the firmware would save.
func buildModel(r rosterFile) (*score.Model, error) {
	if len(r.Names) < 1 || len(r.Names) > score.MaxPlayers {
		return nil, fmt.Errorf("roster has %d names, want 1..%d", len(r.Names), score.MaxPlayers)
	}
	if len(r.Points) > len(r.Names) {
		return nil, fmt.Errorf("roster has %d points for %d names", len(r.Points), len(r.Names))
	}
	if r.Start > persist.MaxStoredPoints {
		return nil, fmt.Errorf("start %d exceeds %d", r.Start, persist.MaxStoredPoints)
	}
	m := score.New(r.Names, r.Start)
	for i, v := range r.Points {
		if v > persist.MaxStoredPoints {
			return nil, fmt.Errorf("points %d for %s exceed %d", v, r.Names[i], persist.MaxStoredPoints)
		}
		m.SetPoints(i, 0, v)
	}
	return m, nil
}

func run(r rosterFile, outPath string, size uint32) error {
	m, err := buildModel(r)
	if err != nil {
		return err
	}
	if size < persist.WiFiOffset {
		return fmt.Errorf("image size %d is smaller than the game region", size)
	}
	img, err := newImageFile(outPath, size)
	if err != nil {
		return err
	}
	if err := persist.NewStore(img, persist.GameOffset).Save(m); err != nil {
		return err
	}
	fmt.Printf("wrote %s: %d players\n", outPath, m.Count())
	return nil
}

func dumpImage(w io.Writer, path string) error {
	img, err := openImageFile(path)
	if err != nil {
		return err
	}
	var m score.Model
	if err := persist.NewStore(img, persist.GameOffset).Load(&m); err != nil {
		return err
	}
	for i := 0; i < m.Count(); i++ {
		fmt.Fprintf(w, "%d %-6s %3d\n", i+1, m.Name(i).String(), m.Points(i, 0))
	}
	return nil
}
