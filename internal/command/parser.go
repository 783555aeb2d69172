package command

import (
	"regexp"
	"sort"
	"strings"

	"golang.org/x/text/unicode/norm"

	"github.com/spec-kit/seatboard/internal/domain"
	"github.com/spec-kit/seatboard/internal/grid"
)

// Index is the read-only view of the board the parser matches names against.
type Index interface {
	EmployeeNames() []string
	Departments() []*domain.Department
}

var (
	coordinateToken = regexp.MustCompile(`(?i)\b([A-Z]{1,2})(1[0-3]|[1-9])\b`)
	createCoord     = regexp.MustCompile(`[A-Za-z]{1,2}\d{1,2}`)
	quoted          = regexp.MustCompile("[\"'`“”]([^\"'`“”]+)[\"'`“”]")
	nameWithTitle   = regexp.MustCompile(`([가-힣]{2,4})\s*[(（]([^)）]+)[)）]`)
	hangulWord      = regexp.MustCompile(`[가-힣]+`)
	hangulName      = regexp.MustCompile(`[가-힣]{2,4}`)
	guessedName     = regexp.MustCompile(`[가-힣]{2,3}`)
)

// Parser maps text to a Command. It is immutable and safe for concurrent use.
type Parser struct {
	kw                Keywords
	departmentFillers *regexp.Regexp
	employeeFillers   *regexp.Regexp
}

// NewParser builds a parser over a copy of kw.
func NewParser(kw Keywords) *Parser {
	kw = kw.clone()
	return &Parser{
		kw:                kw,
		departmentFillers: alternation(kw.DepartmentFillers),
		employeeFillers:   alternation(kw.EmployeeFillers),
	}
}

// Keywords returns a copy of the parser's vocabulary.
func (p *Parser) Keywords() Keywords {
	return p.kw.clone()
}

// Parse interprets text against idx. It never fails: input that matches no
// pattern yields Unrecognized with the evidence that was found. idx may be nil.
func (p *Parser) Parse(text string, idx Index) Command {
	input := strings.TrimSpace(norm.NFC.String(text))
	src := source{Text: input}
	if input == "" {
		return newUnrecognized(src, nil, nil, nil)
	}
	if idx == nil {
		idx = emptyIndex{}
	}

	switch {
	case containsAny(input, p.kw.ScenarioList):
		return ScenarioList{source: src}
	case containsAny(input, p.kw.ScenarioSave):
		return ScenarioSave{source: src, Name: p.scenarioName(input)}
	case containsAny(input, p.kw.ScenarioLoad):
		return ScenarioLoad{source: src, Name: p.scenarioName(input)}
	case containsAny(input, p.kw.ScenarioDelete):
		return ScenarioDelete{source: src, Name: p.scenarioName(input)}
	case containsAny(input, p.kw.Reset):
		return Reset{source: src}
	case containsAny(input, p.kw.Persist):
		return Persist{source: src}
	case containsAny(input, p.kw.Help):
		return Help{source: src}
	}

	if cmd, ok := p.parseStructural(input, src, idx); ok {
		return cmd
	}

	names := p.extractNames(input, idx)
	coords := extractCoordinates(input)
	depts := extractDepartments(input, idx)
	swap := containsAny(input, p.kw.Swap)

	switch {
	case swap && len(names) >= 2:
		return SwapNames{source: src, First: names[0], Second: names[1]}
	case swap && len(coords) >= 2:
		return SwapCoordinates{source: src, First: coords[0], Second: coords[1]}
	case len(names) >= 1 && len(depts) >= 1:
		return MoveToDepartment{source: src, Name: names[0], Department: depts[0]}
	case len(names) >= 1 && len(coords) >= 1:
		return MoveToCoordinate{source: src, Name: names[0], Coordinate: coords[0]}
	case len(coords) >= 2:
		return MoveCoordinate{source: src, From: coords[0], To: coords[1]}
	case len(names) >= 2:
		return SwapNames{source: src, First: names[0], Second: names[1], Guessed: true}
	}
	return newUnrecognized(src, names, coords, depts)
}

// newUnrecognized keeps the evidence lists non-nil so they render as [] rather than null.
func newUnrecognized(src source, names []string, coords []grid.Coordinate, depts []string) Unrecognized {
	if names == nil {
		names = []string{}
	}
	if coords == nil {
		coords = []grid.Coordinate{}
	}
	if depts == nil {
		depts = []string{}
	}
	return Unrecognized{source: src, Names: names, Coordinates: coords, Departments: depts}
}

// parseStructural handles create/delete commands. A candidate that lacks a
// coordinate or a label is dropped so the generic pass can try.
func (p *Parser) parseStructural(input string, src source, idx Index) (Command, bool) {
	if p.createsDepartment(input) {
		if c, ok := createCoordinate(input); ok {
			if name := p.departmentLabel(input); name != "" {
				return CreateDepartment{source: src, Name: name, Coordinate: c}, true
			}
		}
	}
	if containsAny(input, p.kw.DeleteDepartment) {
		if name := departmentToDelete(input, idx); name != "" {
			return DeleteDepartment{source: src, Name: name}, true
		}
	}
	if containsAny(input, p.kw.CreateEmployee) {
		if c, ok := createCoordinate(input); ok {
			if name, position := p.employeeLabel(input); name != "" {
				return CreateEmployee{source: src, Name: name, Position: position, Coordinate: c}, true
			}
		}
	}
	if containsAny(input, p.kw.DeleteEmployee) {
		if names := p.extractNames(input, idx); len(names) > 0 {
			return DeleteEmployee{source: src, Name: names[0]}, true
		}
	}
	return nil, false
}

// createsDepartment reports a department-creation phrase. A keyword shared with
// employee creation (bare "만들어") yields to an employee marker; a
// department-only phrase such as "부서 추가" always counts.
func (p *Parser) createsDepartment(input string) bool {
	shared := false
	for _, kw := range matching(input, p.kw.CreateDepartment) {
		if !contains(p.kw.CreateEmployee, kw) {
			return true
		}
		shared = true
	}
	return shared && !containsAny(input, p.kw.EmployeeMarkers)
}

func createCoordinate(input string) (grid.Coordinate, bool) {
	token := createCoord.FindString(input)
	if token == "" {
		return grid.Coordinate{}, false
	}
	return grid.Parse(token)
}

func (p *Parser) departmentLabel(input string) string {
	if label := quotedText(input); runeLen(label) >= 2 {
		return label
	}
	cleaned := createCoord.ReplaceAllString(input, "")
	if p.departmentFillers != nil {
		cleaned = p.departmentFillers.ReplaceAllString(cleaned, "")
	}
	longest := ""
	for _, word := range hangulWord.FindAllString(cleaned, -1) {
		if runeLen(word) > runeLen(longest) {
			longest = word
		}
	}
	if runeLen(longest) < 2 {
		return ""
	}
	return longest
}

func (p *Parser) employeeLabel(input string) (name, position string) {
	if label := quotedText(input); runeLen(label) >= 2 {
		return label, ""
	}
	if m := nameWithTitle.FindStringSubmatch(input); m != nil {
		return m[1], strings.TrimSpace(m[2])
	}
	cleaned := createCoord.ReplaceAllString(input, "")
	if p.employeeFillers != nil {
		cleaned = p.employeeFillers.ReplaceAllString(cleaned, "")
	}
	if first := hangulName.FindString(cleaned); first != "" {
		return first, ""
	}
	return "", ""
}

func departmentToDelete(input string, idx Index) string {
	for _, d := range idx.Departments() {
		if d.Name != "" && strings.Contains(input, d.Name) {
			return d.Name
		}
	}
	return quotedText(input)
}

// extractNames prefers known employee names, ordered by where they appear.
// A known name that only occurs inside a longer matched name is dropped.
// Without any known name it guesses short Hangul words that are neither
// stop words nor part of a department label.
func (p *Parser) extractNames(input string, idx Index) []string {
	type hit struct {
		name       string
		start, end int
	}
	known := uniqueNonEmpty(idx.EmployeeNames())
	sort.SliceStable(known, func(i, j int) bool { return len(known[i]) > len(known[j]) })

	var claimed [][2]int
	var hits []hit
	for _, name := range known {
		first := -1
		for _, loc := range findAll(input, name) {
			if overlapsAny(loc, claimed) {
				continue
			}
			if first < 0 {
				first = loc[0]
			}
			claimed = append(claimed, loc)
		}
		if first >= 0 {
			hits = append(hits, hit{name: name, start: first})
		}
	}
	if len(hits) > 0 {
		sort.SliceStable(hits, func(i, j int) bool { return hits[i].start < hits[j].start })
		names := make([]string, len(hits))
		for i, h := range hits {
			names[i] = h.name
		}
		return names
	}

	var names []string
	for _, word := range guessedName.FindAllString(input, -1) {
		if contains(p.kw.NameStopWords, word) || contains(names, word) || partOfDepartment(word, idx) {
			continue
		}
		names = append(names, word)
	}
	return names
}

func extractCoordinates(input string) []grid.Coordinate {
	var coords []grid.Coordinate
	for _, token := range coordinateToken.FindAllString(input, -1) {
		if c, ok := grid.Parse(token); ok {
			coords = append(coords, c)
		}
	}
	return coords
}

func extractDepartments(input string, idx Index) []string {
	var found []string
	add := func(label string) {
		if label != "" && strings.Contains(input, label) && !contains(found, label) {
			found = append(found, label)
		}
	}
	for _, d := range idx.Departments() {
		add(d.Name)
		add(d.SubLabel)
	}
	return found
}

// scenarioName prefers quoted text, then whatever follows the marker that
// ends last in the input, minus a leading particle.
func (p *Parser) scenarioName(input string) string {
	if q := quotedText(input); q != "" {
		return q
	}
	cut := -1
	for _, marker := range p.kw.ScenarioMarkers {
		if marker == "" {
			continue
		}
		if i := strings.LastIndex(input, marker); i >= 0 && i+len(marker) > cut {
			cut = i + len(marker)
		}
	}
	if cut < 0 {
		return ""
	}
	rest := strings.TrimSpace(input[cut:])
	for _, particle := range byLengthDesc(p.kw.Particles) {
		if particle != "" && strings.HasPrefix(rest, particle) {
			rest = strings.TrimSpace(strings.TrimPrefix(rest, particle))
			break
		}
	}
	return rest
}

func quotedText(input string) string {
	if m := quoted.FindStringSubmatch(input); m != nil {
		return strings.TrimSpace(m[1])
	}
	return ""
}

func partOfDepartment(word string, idx Index) bool {
	for _, d := range idx.Departments() {
		if strings.Contains(d.Name, word) || (d.SubLabel != "" && strings.Contains(d.SubLabel, word)) {
			return true
		}
	}
	return false
}

func containsAny(text string, keywords []string) bool {
	lower := strings.ToLower(text)
	for _, kw := range keywords {
		if kw != "" && strings.Contains(lower, strings.ToLower(kw)) {
			return true
		}
	}
	return false
}

func matching(text string, keywords []string) []string {
	lower := strings.ToLower(text)
	var out []string
	for _, kw := range keywords {
		if kw != "" && strings.Contains(lower, strings.ToLower(kw)) {
			out = append(out, kw)
		}
	}
	return out
}

func contains(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}

func findAll(s, sub string) [][2]int {
	var out [][2]int
	for offset := 0; offset < len(s); {
		i := strings.Index(s[offset:], sub)
		if i < 0 {
			break
		}
		start := offset + i
		out = append(out, [2]int{start, start + len(sub)})
		offset = start + len(sub)
	}
	return out
}

func overlapsAny(span [2]int, spans [][2]int) bool {
	for _, s := range spans {
		if span[0] < s[1] && s[0] < span[1] {
			return true
		}
	}
	return false
}

func uniqueNonEmpty(in []string) []string {
	out := make([]string, 0, len(in))
	for _, s := range in {
		if s != "" && !contains(out, s) {
			out = append(out, s)
		}
	}
	return out
}

func byLengthDesc(words []string) []string {
	out := append([]string(nil), words...)
	sort.SliceStable(out, func(i, j int) bool { return len(out[i]) > len(out[j]) })
	return out
}

func alternation(words []string) *regexp.Regexp {
	var parts []string
	for _, w := range byLengthDesc(words) {
		if w != "" {
			parts = append(parts, regexp.QuoteMeta(w))
		}
	}
	if len(parts) == 0 {
		return nil
	}
	return regexp.MustCompile(strings.Join(parts, "|"))
}

func runeLen(s string) int {
	return len([]rune(s))
}

type emptyIndex struct{}

func (emptyIndex) EmployeeNames() []string           { return nil }
func (emptyIndex) Departments() []*domain.Department { return nil }
