// main generates the amplitude table used by the sound controller to map a
// 4-bit volume level onto a linear amplitude.
//
// The curve is an exponential where each level is sqrt(2) above the previous
// one, scaled so that the loudest level is 8192 and offset so that the
// quietest one is close to 0. Three channels at full volume sum to 24576,
// which fits comfortably into an uint16.
package main

import (
	"io"
	"log"
	"math"
	"os"
	"strings"
	"text/template"
)

const outputTemplate = `// GENERATED FILE - Run "go generate ./..." to update

package psg

// volumeLevels holds round({{ .Peak }} * exp(i/2 - {{ .Offset }})) for i in 0..{{ .Last }}
var volumeLevels = [{{ len .Levels }}]uint16{
{{ range .Levels }}	{{ . }},
{{ end }}}
`

const (
	levelCount = 16
	peak       = 8192
)

type table struct {
	Peak   int
	Offset float64
	Last   int
	Levels []uint16
}

func newTable() table {
	t := table{
		Peak:   peak,
		Offset: float64(levelCount-1) / 2,
		Last:   levelCount - 1,
	}
	for i := 0; i < levelCount; i++ {
		v := float64(peak) * math.Exp(float64(i)/2-t.Offset)
		t.Levels = append(t.Levels, uint16(math.Round(v)))
	}
	return t
}

func main() {
	if len(os.Args) < 2 {
		log.Printf("Usage: %s output.go", os.Args[0])
		os.Exit(1)
	}

	outputPath := os.Args[1]
	if !strings.HasSuffix(outputPath, ".go") {
		log.Println("Expected output file to have a .go extension")
		os.Exit(1)
	}

	log.Printf("Generating volume table")
	log.Printf("Output: %s", outputPath)

	fp, err := os.Create(outputPath)
	if err != nil {
		log.Panic(err)
	}
	defer fp.Close()

	if err := generate(fp); err != nil {
		log.Panic(err)
	}

	log.Println("Done")
}

func generate(w io.Writer) error {
	tmpl, err := template.New("output").Parse(outputTemplate)
	if err != nil {
		return err
	}
	return tmpl.Execute(w, newTable())
}
