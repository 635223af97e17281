package numa

import (
	"io"
	"io/ioutil"
	"regexp"
	"strconv"
	"strings"
)

const distancesHeader = "node distances:"

var (
	summaryPattern   = regexp.MustCompile(`available:\s*(.+)`)
	nodeCountPattern = regexp.MustCompile(`available: \d+ nodes \(([\d,-]+)\)`)
	nodePattern      = regexp.MustCompile(`node (\d+)`)
	cpusPattern      = regexp.MustCompile(`node (\d+) cpus: ([\d ]*)`)
	memSizePattern   = regexp.MustCompile(`node (\d+) size: (\d+) MB`)
	memFreePattern   = regexp.MustCompile(`node (\d+) free: (\d+) MB`)
)

type extractRule func(text string, b *topologyBuilder)

// Each rule scans the whole text on its own; tool output does not keep a
// stable line order across platforms.
var extractRules = []extractRule{
	extractSummary,
	extractNodeCount,
	extractNodes,
	extractCpus,
	extractDistances,
	extractMemorySize,
	extractMemoryFree,
}

func Extract(text string) Topology {
	builder := newTopologyBuilder()
	for _, rule := range extractRules {
		rule(text, builder)
	}
	return builder.build()
}

func ExtractReader(r io.Reader) (Topology, error) {
	content, err := ioutil.ReadAll(r)
	if err != nil {
		return Topology{}, err
	}
	return Extract(string(content)), nil
}

func extractSummary(text string, b *topologyBuilder) {
	if match := summaryPattern.FindStringSubmatch(text); match != nil {
		b.totalNodesInfo = strings.TrimRight(match[1], "\r")
	}
}

func extractNodeCount(text string, b *topologyBuilder) {
	match := nodeCountPattern.FindStringSubmatch(text)
	if match == nil {
		b.nodeCount = 0
		return
	}
	b.nodeCount = len(strings.Split(match[1], ","))
}

func extractNodes(text string, b *topologyBuilder) {
	for _, match := range nodePattern.FindAllStringSubmatch(text, -1) {
		if id, ok := parseNodeId(match[1]); ok {
			b.seedNode(id)
		}
	}
}

func extractCpus(text string, b *topologyBuilder) {
	for _, match := range cpusPattern.FindAllStringSubmatch(text, -1) {
		id, ok := parseNodeId(match[1])
		if !ok {
			continue
		}
		b.setCpus(id, len(strings.Fields(match[2])))
	}
}

func extractMemorySize(text string, b *topologyBuilder) {
	for _, match := range memSizePattern.FindAllStringSubmatch(text, -1) {
		id, ok := parseNodeId(match[1])
		if !ok {
			continue
		}
		size, err := strconv.ParseUint(match[2], 10, 64)
		if err != nil {
			continue
		}
		b.setMemorySize(id, size)
	}
}

func extractMemoryFree(text string, b *topologyBuilder) {
	for _, match := range memFreePattern.FindAllStringSubmatch(text, -1) {
		id, ok := parseNodeId(match[1])
		if !ok {
			continue
		}
		free, err := strconv.ParseUint(match[2], 10, 64)
		if err != nil {
			continue
		}
		b.setMemoryFree(id, free)
	}
}

// The distance block runs from the line after the header up to the first
// blank line or the end of text.
func extractDistances(text string, b *topologyBuilder) {
	start := strings.Index(text, distancesHeader)
	if start < 0 {
		return
	}
	rest := text[start+len(distancesHeader):]
	newline := strings.Index(rest, "\n")
	if newline < 0 {
		return
	}
	for _, line := range strings.Split(rest[newline+1:], "\n") {
		tokens := strings.Fields(line)
		if len(tokens) == 0 {
			break
		}
		b.distances = append(b.distances, tokens)
		if label := tokens[0]; strings.HasSuffix(label, ":") {
			if id, ok := parseNodeId(strings.TrimSuffix(label, ":")); ok {
				b.seedNode(id)
			}
		}
	}
}

func parseNodeId(input string) (int, bool) {
	id, err := strconv.Atoi(input)
	if err != nil || id < 0 {
		return 0, false
	}
	return id, true
}
