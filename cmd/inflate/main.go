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
	raw := flag.Bool("raw", false, "treat input as bare DEFLATE (no zlib header/trailer)")
	flag.Parse()

	if *inputFile == "" || *outputFile == "" {
		flag.PrintDefaults()
		os.Exit(0)
	}

	fileIn, err := os.Open(*inputFile)
	if err != nil {
		log.Fatal(err)
	}
	defer fileIn.Close()

	wrap := deflate.Zlib
	if *raw {
		wrap = deflate.Raw
	}
	r := deflate.NewReader(fileIn, wrap)
	defer r.Close()

	decoded, err := ioutil.ReadAll(r)
	if err != nil {
		log.Fatal(err)
	}
	if err := ioutil.WriteFile(*outputFile, decoded, 0777); err != nil {
		log.Fatal(err)
	}
}
