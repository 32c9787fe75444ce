// Command readmet extracts the ED2K hash, meta tags and download state from
// eDonkey2000/Overnet/eMule .part.met files.
package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/jrivets/log4g"
	"gopkg.in/alecthomas/kingpin.v2"

	"github.com/francescodifilippo/readmet"
)

const version = "readmet v1.0"

type options struct {
	files []string

	showSpecial  bool
	showGap      bool
	showStandard bool
	showUnknown  bool

	showFileName   bool
	showFileSize   bool
	showDate       bool
	showProgress   bool
	showHash       bool
	showMetVersion bool
	showTagCount   bool

	jsonOutput bool
	verbose    bool
	visualize  bool
}

func parseCLP() *options {
	var (
		files      = kingpin.Flag("file", "The .part.met file to analyze.").Short('f').Required().ExistingFiles()
		all        = kingpin.Flag("all", "Show all tags (default).").Short('a').Bool()
		special    = kingpin.Flag("special", "Show only special tags.").Short('s').Bool()
		gap        = kingpin.Flag("gap", "Show only gap tags.").Short('g').Bool()
		standard   = kingpin.Flag("standard", "Show only standard tags.").Short('t').Bool()
		unknown    = kingpin.Flag("unknown", "Show unknown tags.").Short('u').Bool()
		name       = kingpin.Flag("name", "Show filename only.").Short('n').Bool()
		size       = kingpin.Flag("size", "Show file size only.").Short('S').Bool()
		date       = kingpin.Flag("date", "Show last seen complete date only.").Short('d').Bool()
		progress   = kingpin.Flag("progress", "Show download progress only.").Short('p').Bool()
		hash       = kingpin.Flag("hash", "Show ED2K hash only.").Short('e').Bool()
		metVersion = kingpin.Flag("metversion", "Show .part.met version only (14.0 or 14.1).").Short('m').Bool()
		tagCount   = kingpin.Flag("tagcount", "Show number of meta tags only.").Short('c').Bool()
		jsonOutput = kingpin.Flag("json", "Output in JSON format.").Short('j').Bool()
		verbose    = kingpin.Flag("verbose", "Show detailed information.").Short('v').Bool()
		visualize  = kingpin.Flag("visualize", "Visualize file download status.").Short('z').Bool()
	)
	kingpin.Version(version)
	kingpin.CommandLine.Help = "Extract ED2K hash and meta tags from .part.met files"
	kingpin.Parse()

	opts := &options{
		files:          *files,
		showSpecial:    *special || *all,
		showGap:        *gap || *all,
		showStandard:   *standard || *all,
		showUnknown:    *unknown || *all,
		showFileName:   *name,
		showFileSize:   *size,
		showDate:       *date,
		showProgress:   *progress,
		showHash:       *hash,
		showMetVersion: *metVersion,
		showTagCount:   *tagCount,
		jsonOutput:     *jsonOutput,
		verbose:        *verbose,
		visualize:      *visualize,
	}
	// no filters or specific fields selected - show everything
	if !opts.showSpecial && !opts.showGap && !opts.showStandard && !opts.showUnknown &&
		!opts.showFileName && !opts.showFileSize && !opts.showDate && !opts.showProgress &&
		!opts.showHash && !opts.showMetVersion && !opts.showTagCount && !opts.visualize {
		opts.showSpecial = true
		opts.showGap = true
		opts.showStandard = true
		opts.showUnknown = true
	}
	return opts
}

func main() {
	defer log4g.Shutdown()
	logger := log4g.GetLogger("readmet")

	opts := parseCLP()

	parseOpts := &readmet.ParseOptions{Mode: readmet.ParseFull}
	if opts.showMetVersion || opts.showHash || opts.showTagCount {
		// these fields never need the tag stream
		parseOpts.Mode = readmet.ParseHeaderOnly
	}
	results, err := readmet.ParseManyFiles(context.Background(), parseOpts, opts.files...)
	if err != nil {
		logger.Error("decode failed: ", err)
		os.Exit(1)
	}

	for i, result := range results {
		path := ""
		if len(results) > 1 {
			path = opts.files[i]
		}
		if err = report(os.Stdout, result, path, opts); err != nil {
			logger.Error("output failed: ", err)
			os.Exit(1)
		}
	}
}

func formatTimestamp(ts uint32) string {
	return time.Unix(int64(ts), 0).Format("2006-01-02 15:04:05")
}

func singleField(p *readmet.PartMet, opts *options) (key string, value any, ok bool) {
	switch {
	case opts.showMetVersion:
		return "format_version", p.Header.Version.String(), true
	case opts.showHash:
		return "ed2k_hash", p.Hash.String(), true
	case opts.showTagCount:
		return "num_tags", p.TagCount, true
	case opts.showFileName:
		return "filename", p.FileName(), true
	case opts.showFileSize:
		return "filesize", p.FileSize(), true
	case opts.showDate:
		if ts, found := p.LastSeen(); found {
			if opts.verbose {
				return "last_seen", formatTimestamp(ts), true
			}
			return "last_seen", ts, true
		}
		return "last_seen", nil, true
	case opts.showProgress:
		return "progress", fmt.Sprintf("%.1f", p.Progress()), true
	}
	return "", nil, false
}
