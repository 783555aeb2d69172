package command

import (
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"
)

// Keywords is the closed vocabulary the parser matches against. A Parser
// copies it at construction; it is never mutated afterwards.
type Keywords struct {
	ScenarioList   []string `yaml:"scenario_list"`
	ScenarioSave   []string `yaml:"scenario_save"`
	ScenarioLoad   []string `yaml:"scenario_load"`
	ScenarioDelete []string `yaml:"scenario_delete"`

	Reset   []string `yaml:"reset"`
	Persist []string `yaml:"persist"`
	Help    []string `yaml:"help"`
	Swap    []string `yaml:"swap"`

	CreateDepartment []string `yaml:"create_department"`
	DeleteDepartment []string `yaml:"delete_department"`
	CreateEmployee   []string `yaml:"create_employee"`
	DeleteEmployee   []string `yaml:"delete_employee"`

	// EmployeeMarkers suppress the department-creation reading.
	EmployeeMarkers []string `yaml:"employee_markers"`
	// NameStopWords are never taken as guessed person names.
	NameStopWords []string `yaml:"name_stop_words"`
	// ScenarioMarkers precede a scenario name in free text.
	ScenarioMarkers []string `yaml:"scenario_markers"`
	// Particles are stripped from the front of an extracted scenario name.
	Particles []string `yaml:"particles"`
	// DepartmentFillers and EmployeeFillers are removed before the residual label search.
	DepartmentFillers []string `yaml:"department_fillers"`
	EmployeeFillers   []string `yaml:"employee_fillers"`
}

// DefaultKeywords returns the built-in vocabulary.
func DefaultKeywords() Keywords {
	return Keywords{
		ScenarioList:   []string{"시나리오 목록", "스냅샷 목록", "저장 목록"},
		ScenarioSave:   []string{"시나리오 저장", "스냅샷 저장", "상태 저장"},
		ScenarioLoad:   []string{"시나리오 불러", "시나리오 로드", "스냅샷 불러", "상태 불러"},
		ScenarioDelete: []string{"시나리오 삭제", "스냅샷 삭제"},

		Reset:   []string{"초기화", "리셋", "reset", "원래대로", "처음으로"},
		Persist: []string{"저장", "save", "세이브"},
		Help:    []string{"도움", "도움말", "help", "뭐", "어떻게", "사용법"},
		Swap:    []string{"바꿔", "바꾸", "교환", "스왑", "swap", "맞바꿔", "서로"},

		CreateDepartment: []string{"부서 만들", "부서 추가", "부서 생성", "만들어"},
		DeleteDepartment: []string{"부서 삭제", "부서 제거"},
		CreateEmployee:   []string{"직원 추가", "사람 추가", "직원 생성", "추가해", "만들어", "생성해"},
		DeleteEmployee:   []string{"직원 삭제", "사람 삭제", "삭제해"},

		EmployeeMarkers: []string{"직원", "사람"},
		NameStopWords: []string{
			"이동", "옮기", "바꿔", "교환", "자리", "위치", "으로", "에게",
			"우측", "좌측", "오른", "왼쪽", "초록", "파란", "블록",
		},
		ScenarioMarkers:   []string{"시나리오", "스냅샷", "저장", "불러", "삭제", "로드"},
		Particles:         []string{"으로", "에서", "오기", "을", "를", "로", "에", "와"},
		DepartmentFillers: []string{"만들어", "추가해", "생성해", "부서", "에", "를", "을", "주세요", "해줘", "줘"},
		EmployeeFillers:   []string{"추가해", "만들어", "생성해", "직원", "사람", "에", "를", "을", "주세요", "해줘", "줘"},
	}
}

// LoadKeywords reads a YAML override file. Lists present in the file replace
// the built-in ones; absent lists keep their defaults.
func LoadKeywords(path string) (Keywords, error) {
	kw := DefaultKeywords()
	if path == "" {
		return kw, nil
	}
	raw, err := os.ReadFile(path)
	if err != nil {
		return Keywords{}, fmt.Errorf("read keywords: %w", err)
	}
	var override Keywords
	if err := yaml.Unmarshal(raw, &override); err != nil {
		return Keywords{}, fmt.Errorf("parse keywords %s: %w", path, err)
	}
	kw.merge(override)
	if err := kw.Validate(); err != nil {
		return Keywords{}, err
	}
	return kw, nil
}

// Dump writes k as YAML in the format LoadKeywords reads.
func (k Keywords) Dump(w io.Writer) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(k); err != nil {
		return fmt.Errorf("encode keywords: %w", err)
	}
	return enc.Close()
}

// Validate reports a list that must not be empty.
func (k Keywords) Validate() error {
	required := map[string][]string{
		"scenario_list":     k.ScenarioList,
		"scenario_save":     k.ScenarioSave,
		"scenario_load":     k.ScenarioLoad,
		"scenario_delete":   k.ScenarioDelete,
		"reset":             k.Reset,
		"persist":           k.Persist,
		"help":              k.Help,
		"swap":              k.Swap,
		"create_department": k.CreateDepartment,
		"delete_department": k.DeleteDepartment,
		"create_employee":   k.CreateEmployee,
		"delete_employee":   k.DeleteEmployee,
	}
	for name, list := range required {
		if len(list) == 0 {
			return fmt.Errorf("keyword list %q is empty", name)
		}
	}
	return nil
}

func (k *Keywords) merge(o Keywords) {
	pick := func(dst *[]string, src []string) {
		if len(src) > 0 {
			*dst = append([]string(nil), src...)
		}
	}
	pick(&k.ScenarioList, o.ScenarioList)
	pick(&k.ScenarioSave, o.ScenarioSave)
	pick(&k.ScenarioLoad, o.ScenarioLoad)
	pick(&k.ScenarioDelete, o.ScenarioDelete)
	pick(&k.Reset, o.Reset)
	pick(&k.Persist, o.Persist)
	pick(&k.Help, o.Help)
	pick(&k.Swap, o.Swap)
	pick(&k.CreateDepartment, o.CreateDepartment)
	pick(&k.DeleteDepartment, o.DeleteDepartment)
	pick(&k.CreateEmployee, o.CreateEmployee)
	pick(&k.DeleteEmployee, o.DeleteEmployee)
	pick(&k.EmployeeMarkers, o.EmployeeMarkers)
	pick(&k.NameStopWords, o.NameStopWords)
	pick(&k.ScenarioMarkers, o.ScenarioMarkers)
	pick(&k.Particles, o.Particles)
	pick(&k.DepartmentFillers, o.DepartmentFillers)
	pick(&k.EmployeeFillers, o.EmployeeFillers)
}

func (k Keywords) clone() Keywords {
	var out Keywords
	out.merge(k)
	return out
}
