package main

import (
	"flag"
	"io/ioutil"
	"log"
	"os"

	"github.com/joshvarga/deflate"
)

func main() {
	inputFile := flag.String("i", "", "input file")
	outputFile := flag.String("o", "", "output file")
	level := flag.Int("level", 6, "compression level 0-10")
	raw := flag.Bool("raw", false, "emit bare DEFLATE (no zlib header/trailer)")
	flag.Parse()

	if *inputFile == "" || *outputFile == "" {
		flag.PrintDefaults()
		os.Exit(0)
	}

	data, err := ioutil.ReadFile(*inputFile)
	if err != nil {
		log.Fatal(err)
	}

	flags, err := deflate.FlagsForLevel(*level, !*raw)
	if err != nil {
		log.Fatal(err)
	}

	fileOut, err := os.Create(*outputFile)
	if err != nil {
		log.Fatal(err)
	}
	defer fileOut.Close()

	w := deflate.NewWriter(fileOut, flags)
	if _, err := w.Write(data); err != nil {
		log.Fatal(err)
	}
	if err := w.Close(); err != nil {
		log.Fatal(err)
	}
}
