/* Process a stream with a letter transducer */
package main

import (
	"bufio"
	"fmt"
	"os"

	"github.com/charmbracelet/log"
	"github.com/spf13/pflag"

	lttoolbox "github.com/taruen/lttoolbox/src"
)

func usage() {
	fmt.Fprintf(os.Stderr, "lt-proc: process a stream with a letter transducer\n")
	fmt.Fprintf(os.Stderr, "USAGE: lt-proc [ -a | -b | -c | -d | -e | -g | -n | -p | -x | -s | -t | -v | -h | -z | -w ] [-W] [-N N] [-L N] [ -i icx_file ] [ -r rcx_file ] fst_file [input_file [output_file]]\n")
	fmt.Fprintf(os.Stderr, "Options:\n")
	pflag.PrintDefaults()
	os.Exit(1)
}

func main() {
	var (
		analysis        = pflag.BoolP("analysis", "a", false, "morphological analysis (default behavior)")
		bilingual       = pflag.BoolP("bilingual", "b", false, "lexical transfer")
		caseSensitive   = pflag.BoolP("case-sensitive", "c", false, "use the literal case of the incoming characters")
		debuggedGen     = pflag.BoolP("debugged-gen", "d", false, "morph. generation with all the stuff")
		decomposeNouns  = pflag.BoolP("decompose-nouns", "e", false, "try to decompose unknown words as compounds")
		generation      = pflag.BoolP("generation", "g", false, "morphological generation")
		ignoredChars    = pflag.StringP("ignored-chars", "i", "", "specify file with characters to ignore")
		restoreChars    = pflag.StringP("restore-chars", "r", "", "specify file with characters to diacritic restoration")
		taggedGen       = pflag.BoolP("tagged-gen", "l", false, "morphological generation keeping lexical forms")
		taggedNMGen     = pflag.BoolP("tagged-nm-gen", "m", false, "same as -l but without unknown word marks")
		nonMarkedGen    = pflag.BoolP("non-marked-gen", "n", false, "morph. generation without unknown word marks")
		surfBilingual   = pflag.BoolP("surf-bilingual", "o", false, "lexical transfer with surface forms")
		postGeneration  = pflag.BoolP("post-generation", "p", false, "post-generation")
		interGeneration = pflag.BoolP("inter-generation", "x", false, "inter-generation")
		sao             = pflag.BoolP("sao", "s", false, "SAO annotation system input processing")
		translit        = pflag.BoolP("transliteration", "t", false, "apply transliteration dictionary")
		version         = pflag.BoolP("version", "v", false, "version")
		nullFlush       = pflag.BoolP("null-flush", "z", false, "flush output on the null character")
		dictionaryCase  = pflag.BoolP("dictionary-case", "w", false, "use dictionary case instead of surface case")
		carefulCase     = pflag.BoolP("careful-case", "C", false, "use dictionary case if present, else surface")
		noDefaultIgnore = pflag.BoolP("no-default-ignore", "I", false, "skips loading the default ignore characters")
		showWeights     = pflag.BoolP("show-weights", "W", false, "print final analysis weights (if any)")
		maxAnalyses     = pflag.IntP("analyses", "N", 0, "output no more than N analyses (if the transducer is weighted, the N best analyses)")
		maxWeightClasses = pflag.IntP("weight-classes", "L", 0, "output no more than N best weight classes (where analyses with equal weight constitute a class)")
		help            = pflag.BoolP("help", "h", false, "show this help")
	)

	pflag.Usage = usage
	pflag.Parse()

	if *help {
		usage()
	}
	if *version {
		lttoolbox.PrintVersion("lt-proc")
		os.Exit(0)
	}

	var fstp = lttoolbox.NewFSTProcessor()
	fstp.SetCaseSensitiveMode(*caseSensitive)
	fstp.SetNullFlush(*nullFlush)
	fstp.SetDictionaryCaseMode(*dictionaryCase)
	fstp.SetDisplayWeightsMode(*showWeights)
	if *noDefaultIgnore {
		fstp.SetUseDefaultIgnoredChars(false)
	}
	if pflag.Lookup("analyses").Changed {
		if *maxAnalyses < 1 {
			log.Error("Invalid or no argument for analyses count")
			os.Exit(1)
		}
		fstp.SetMaxAnalysesValue(*maxAnalyses)
	}
	if pflag.Lookup("weight-classes").Changed {
		if *maxWeightClasses < 1 {
			log.Error("Invalid or no argument for weight class count")
			os.Exit(1)
		}
		fstp.SetMaxWeightClassesValue(*maxWeightClasses)
	}

	// Exactly one processing mode; -g -b degrades to bilingual while
	// keeping the unknown-word marks, like the original tool chain
	// expects from "lt-proc -g -b generador.bin".
	var cmd byte
	var bilmode = lttoolbox.GenUnknown
	var set = func(c byte) {
		if cmd == 0 {
			cmd = c
			return
		}
		if cmd == 'g' && c == 'b' {
			cmd = 'b'
			bilmode = lttoolbox.GenUnknown
			return
		}
		if cmd == 'b' && c == 'g' {
			return
		}
		usage()
	}
	if *analysis {
		set('a')
	}
	if *generation {
		set('g')
	}
	if *bilingual {
		set('b')
	}
	if *surfBilingual {
		set('o')
	}
	if *decomposeNouns {
		set('e')
	}
	if *postGeneration {
		set('p')
	}
	if *interGeneration {
		set('x')
	}
	if *sao {
		set('s')
	}
	if *translit {
		set('t')
	}
	if *debuggedGen {
		if cmd == 0 {
			cmd = 'g'
		}
		bilmode = lttoolbox.GenAll
	}
	if *taggedGen {
		if cmd == 0 {
			cmd = 'g'
		}
		bilmode = lttoolbox.GenTagged
	}
	if *taggedNMGen {
		if cmd == 0 {
			cmd = 'g'
		}
		bilmode = lttoolbox.GenTaggedNM
	}
	if *nonMarkedGen {
		if cmd == 0 {
			cmd = 'g'
		}
		bilmode = lttoolbox.GenClean
	}
	if *carefulCase {
		if cmd == 0 {
			cmd = 'g'
		}
		bilmode = lttoolbox.GenCarefulCase
	}
	if cmd == 0 {
		cmd = 'a'
	}

	if *ignoredChars != "" {
		fstp.SetIgnoredChars(true)
		if err := fstp.ParseICX(*ignoredChars); err != nil {
			log.Fatal("Cannot load ignored characters", "file", *ignoredChars, "err", err)
		}
	}
	if *restoreChars != "" {
		fstp.SetRestoreChars(true)
		if err := fstp.ParseRCX(*restoreChars); err != nil {
			log.Fatal("Cannot load restore characters", "file", *restoreChars, "err", err)
		}
		fstp.SetUseDefaultIgnoredChars(false)
	}

	var args = pflag.Args()
	if len(args) < 1 || len(args) > 3 {
		usage()
	}

	var fst, err = os.Open(args[0])
	if err != nil {
		log.Fatal("Cannot open transducer", "file", args[0], "err", err)
	}
	if err = fstp.Load(fst); err != nil {
		log.Fatal("Cannot load transducer", "file", args[0], "err", err)
	}
	fst.Close()

	var inFile = os.Stdin
	if len(args) >= 2 {
		if inFile, err = os.Open(args[1]); err != nil {
			log.Fatal("Cannot open input", "file", args[1], "err", err)
		}
		defer inFile.Close()
	}
	var outFile = os.Stdout
	if len(args) == 3 {
		if outFile, err = os.Create(args[2]); err != nil {
			log.Fatal("Cannot open output", "file", args[2], "err", err)
		}
		defer outFile.Close()
	}

	var input = lttoolbox.NewInputFile(inFile)
	var output = bufio.NewWriter(outFile)

	var run func() error
	switch cmd {
	case 'g':
		fstp.InitGeneration()
		run = func() error { return fstp.Generation(input, output, bilmode) }
	case 'p':
		fstp.InitPostgeneration()
		run = func() error { return fstp.Postgeneration(input, output) }
	case 'x':
		fstp.InitPostgeneration()
		run = func() error { return fstp.Intergeneration(input, output) }
	case 's':
		fstp.InitAnalysis()
		run = func() error { return fstp.SAO(input, output) }
	case 't':
		fstp.InitPostgeneration()
		run = func() error { return fstp.Transliteration(input, output) }
	case 'o':
		fstp.InitBiltrans()
		fstp.SetBiltransSurfaceForms(true)
		run = func() error { return fstp.Bilingual(input, output, bilmode) }
	case 'b':
		fstp.InitBiltrans()
		run = func() error { return fstp.Bilingual(input, output, bilmode) }
	case 'e':
		fstp.InitDecomposition()
		run = func() error { return fstp.Analysis(input, output) }
	default:
		fstp.InitAnalysis()
		run = func() error { return fstp.Analysis(input, output) }
	}

	if !fstp.Valid() {
		os.Exit(1)
	}
	if err = run(); err != nil {
		if fstp.GetNullFlush() {
			output.WriteByte(0)
		}
		output.Flush()
		log.Error("Stream processing failed", "err", err)
		os.Exit(1)
	}
	output.Flush()
}
