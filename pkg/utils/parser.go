package utils

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"regexp"
	"strconv"
	"strings"

	"baggage-claim-service/internal/domain/entity"
	"baggage-claim-service/pkg/logger"
)

// ErrInvalidFeedLine is wrapped by every feed parse failure
var ErrInvalidFeedLine = errors.New("invalid feed line")

var (
	updateLineRe = regexp.MustCompile(`^update\s+(\d+)\s*,\s*([^,]*?)\s*,\s*(\d+)$`)
	clearLineRe  = regexp.MustCompile(`^clear\s+(\d+)$`)
	monitorRe    = regexp.MustCompile(`^(subscribe|unsubscribe)\s+(\S+)$`)
)

// FeedParser turns feed scripts into commands
type FeedParser struct {
	logger logger.Logger
}

// NewFeedParser creates a new feed parser
func NewFeedParser(logger logger.Logger) *FeedParser {
	return &FeedParser{
		logger: logger,
	}
}

// Parse reads a whole feed script. Blank lines and lines starting with #
// are skipped. The first malformed line aborts parsing.
func (p *FeedParser) Parse(r io.Reader) ([]FeedCommand, error) {
	var commands []FeedCommand

	scanner := bufio.NewScanner(r)
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		cmd, err := p.ParseLine(line)
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", lineNo, err)
		}
		cmd.Line = lineNo
		commands = append(commands, cmd)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("failed to read feed: %w", err)
	}

	p.logger.Debug("Parsed feed", "commands", len(commands), "lines", lineNo)
	return commands, nil
}

// ParseLine parses a single non-empty feed line
func (p *FeedParser) ParseLine(line string) (FeedCommand, error) {
	if match := updateLineRe.FindStringSubmatch(line); match != nil {
		flightNo, err := parseNumber(match[1])
		if err != nil {
			return FeedCommand{}, err
		}
		carousel, err := parseNumber(match[3])
		if err != nil {
			return FeedCommand{}, err
		}
		return FeedCommand{
			Verb: VerbUpdate,
			Info: entity.NewBaggageInfo(flightNo, match[2], carousel),
		}, nil
	}

	if match := clearLineRe.FindStringSubmatch(line); match != nil {
		flightNo, err := parseNumber(match[1])
		if err != nil {
			return FeedCommand{}, err
		}
		return FeedCommand{
			Verb: VerbClear,
			Info: entity.NewClearedBaggageInfo(flightNo),
		}, nil
	}

	if match := monitorRe.FindStringSubmatch(line); match != nil {
		return FeedCommand{
			Verb:    match[1],
			Monitor: match[2],
		}, nil
	}

	if line == VerbClose {
		return FeedCommand{Verb: VerbClose}, nil
	}

	return FeedCommand{}, fmt.Errorf("%w: %q", ErrInvalidFeedLine, line)
}

func parseNumber(value string) (int, error) {
	n, err := strconv.Atoi(value)
	if err != nil {
		return 0, fmt.Errorf("%w: %q is out of range", ErrInvalidFeedLine, value)
	}
	return n, nil
}

func itoa(n int) string {
	return strconv.Itoa(n)
}
