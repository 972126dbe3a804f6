package main

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/driverfury/gzdec"
	"github.com/hashicorp/go-multierror"
	getopt "github.com/pborman/getopt/v2"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

const version = "gzdec version 1.0.0\n"

var (
	flagVersion   = false
	flagDebug     = false
	flagTrace     = false
	flagLogStderr = false

	flagStdout = false
	flagForce  = false
	flagKeep   = false

	flagFormat            = FormatFlag{gzdec.AutoFormat}
	flagDict              = ""
	flagVerifyChecksum    = false
	flagVerifyHeaderCRC16 = false
)

func init() {
	getopt.SetParameters("[<input.gz> ...]")

	getopt.FlagLong(&flagVersion, "version", 'V', "print version and exit")

	getopt.FlagLong(&flagDebug, "verbose", 'v', "enable debug logging")
	getopt.FlagLong(&flagTrace, "debug", 'D', "enable debug and trace logging")
	getopt.FlagLong(&flagLogStderr, "log-stderr", 'L', "log JSON to stderr")

	getopt.FlagLong(&flagFormat, "format", 'F', "envelope format; one of auto, gzip, or zlib")
	getopt.FlagLong(&flagDict, "dictionary", 0, "contents of pre-set zlib dictionary, or @filename")
	getopt.FlagLong(&flagVerifyChecksum, "verify-checksum", 0, "verify the payload CRC-32/Adler-32 trailer")
	getopt.FlagLong(&flagVerifyHeaderCRC16, "verify-header-crc16", 0, "verify the gzip FHCRC header checksum, if present")

	getopt.FlagLong(&flagStdout, "stdout", 'c', "write on standard output, keep original files unchanged")
	getopt.FlagLong(&flagForce, "force", 'f', "force overwrite of output file")
	getopt.FlagLong(&flagKeep, "keep", 'k', "keep (don't delete) input files")
}

func main() {
	getopt.Parse()

	if flagVersion {
		fmt.Print(version)
		os.Exit(0)
	}

	zerolog.TimeFieldFormat = zerolog.TimeFormatUnix
	zerolog.SetGlobalLevel(zerolog.InfoLevel)
	if flagDebug {
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
	}
	if flagTrace {
		zerolog.SetGlobalLevel(zerolog.TraceLevel)
	}

	if !flagLogStderr {
		log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})
	}

	var dict []byte
	if flagDict != "" {
		if flagDict[0] == '@' {
			raw, err := os.ReadFile(flagDict[1:])
			if err != nil {
				log.Logger.Fatal().
					Str("filename", flagDict[1:]).
					Err(err).
					Msg("os.ReadFile failed")
			}
			dict = raw
		} else {
			dict = []byte(flagDict)
		}
	}

	args := getopt.Args()
	if len(args) == 0 {
		flagStdout = true
		args = []string{"-"}
	}

	var errlist []error
	for _, arg := range args {
		if err := decodeOneFile(arg, dict); err != nil {
			log.Logger.Error().
				Str("filename", arg).
				Err(err).
				Msg("gzdec: decode failed")
			errlist = append(errlist, fmt.Errorf("%s: %w", arg, err))
		}
	}

	switch len(errlist) {
	case 0:
		// nothing to report
	case 1:
		log.Logger.Fatal().Err(errlist[0]).Msg("gzdec: failed")
	default:
		log.Logger.Fatal().Err(&multierror.Error{Errors: errlist}).Msg("gzdec: failed")
	}
}

func decodeOneFile(arg string, dict []byte) error {
	var raw []byte
	var err error
	if arg == "-" {
		raw, err = io.ReadAll(os.Stdin)
	} else {
		raw, err = os.ReadFile(arg)
	}
	if err != nil {
		return err
	}

	opts := []gzdec.Option{
		gzdec.WithTracers(gzdec.Log(log.Logger)),
		gzdec.WithFormat(flagFormat.Value),
		gzdec.WithVerifyChecksum(flagVerifyChecksum),
		gzdec.WithVerifyHeaderCRC16(flagVerifyHeaderCRC16),
	}
	if dict != nil {
		opts = append(opts, gzdec.WithDictionary(dict))
	}

	out, header, err := gzdec.Decode(raw, opts...)
	if err != nil {
		return err
	}

	if !flagStdout && arg != "-" {
		outName := outputName(arg, header)
		if _, statErr := os.Stat(outName); statErr == nil && !flagForce {
			return fmt.Errorf("%s already exists; use --force to overwrite", outName)
		}
		f, err := os.OpenFile(outName, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0666)
		if err != nil {
			return err
		}
		defer f.Close()
		if _, err := f.Write(out); err != nil {
			return err
		}
	} else {
		if _, err := os.Stdout.Write(out); err != nil {
			return err
		}
	}

	if !flagKeep && !flagStdout && arg != "-" {
		if err := os.Remove(arg); err != nil {
			return err
		}
	}

	return nil
}

// outputName derives the decompressed file's name: the gzip header's
// recorded FileName if present, else arg with a trailing ".gz" trimmed.
func outputName(arg string, header gzdec.Header) string {
	if header.FileName != "" {
		return header.FileName
	}
	return strings.TrimSuffix(arg, ".gz")
}
