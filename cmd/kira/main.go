// Command kira runs the lab spectra utilities from the shell.
//
// Usage:
//
//	kira [--config FILE] [--log-level LEVEL] [--strict] <command>
//
// Examples:
//
//	kira bet 50 0.5 2.5
//	kira ftir ratio -f "Sample 1.asp"
//	kira ftir plot -o ftir.png s1.asp:"10:5 flame" s2.asp
//	kira np summary data/NaYF4_Er --low 500 --high 700
//	kira np rescale data/NaYF4_Er --ref data/NaYF4_ref_new --low 500 --high 700 --xlsx out.xlsx
//	kira fit scan.txt --low 520 --high 560
package main

import (
	"os"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

func main() {
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})

	if err := newRootCmd().Execute(); err != nil {
		log.Error().Err(err).Msg("kira failed")
		os.Exit(1)
	}
}
