package gst

import (
	"strings"
)

// State is an Indian state or union territory with its GST state code.
type State struct {
	Code           string `json:"code"`
	Name           string `json:"name"`
	Abbreviation   string `json:"abbreviation"`
	UnionTerritory bool   `json:"unionTerritory"`
}

var states = []State{
	{Code: "01", Name: "Jammu and Kashmir", Abbreviation: "JK", UnionTerritory: true},
	{Code: "02", Name: "Himachal Pradesh", Abbreviation: "HP"},
	{Code: "03", Name: "Punjab", Abbreviation: "PB"},
	{Code: "04", Name: "Chandigarh", Abbreviation: "CH", UnionTerritory: true},
	{Code: "05", Name: "Uttarakhand", Abbreviation: "UK"},
	{Code: "06", Name: "Haryana", Abbreviation: "HR"},
	{Code: "07", Name: "Delhi", Abbreviation: "DL", UnionTerritory: true},
	{Code: "08", Name: "Rajasthan", Abbreviation: "RJ"},
	{Code: "09", Name: "Uttar Pradesh", Abbreviation: "UP"},
	{Code: "10", Name: "Bihar", Abbreviation: "BR"},
	{Code: "11", Name: "Sikkim", Abbreviation: "SK"},
	{Code: "12", Name: "Arunachal Pradesh", Abbreviation: "AR"},
	{Code: "13", Name: "Nagaland", Abbreviation: "NL"},
	{Code: "14", Name: "Manipur", Abbreviation: "MN"},
	{Code: "15", Name: "Mizoram", Abbreviation: "MZ"},
	{Code: "16", Name: "Tripura", Abbreviation: "TR"},
	{Code: "17", Name: "Meghalaya", Abbreviation: "ML"},
	{Code: "18", Name: "Assam", Abbreviation: "AS"},
	{Code: "19", Name: "West Bengal", Abbreviation: "WB"},
	{Code: "20", Name: "Jharkhand", Abbreviation: "JH"},
	{Code: "21", Name: "Odisha", Abbreviation: "OD"},
	{Code: "22", Name: "Chhattisgarh", Abbreviation: "CG"},
	{Code: "23", Name: "Madhya Pradesh", Abbreviation: "MP"},
	{Code: "24", Name: "Gujarat", Abbreviation: "GJ"},
	{Code: "26", Name: "Dadra and Nagar Haveli and Daman and Diu", Abbreviation: "DH", UnionTerritory: true},
	{Code: "27", Name: "Maharashtra", Abbreviation: "MH"},
	{Code: "29", Name: "Karnataka", Abbreviation: "KA"},
	{Code: "30", Name: "Goa", Abbreviation: "GA"},
	{Code: "31", Name: "Lakshadweep", Abbreviation: "LD", UnionTerritory: true},
	{Code: "32", Name: "Kerala", Abbreviation: "KL"},
	{Code: "33", Name: "Tamil Nadu", Abbreviation: "TN"},
	{Code: "34", Name: "Puducherry", Abbreviation: "PY", UnionTerritory: true},
	{Code: "35", Name: "Andaman and Nicobar Islands", Abbreviation: "AN", UnionTerritory: true},
	{Code: "36", Name: "Telangana", Abbreviation: "TS"},
	{Code: "37", Name: "Andhra Pradesh", Abbreviation: "AP"},
	{Code: "38", Name: "Ladakh", Abbreviation: "LA", UnionTerritory: true},
	{Code: "97", Name: "Other Territory", Abbreviation: "OT", UnionTerritory: true},
}

// Older codes and spellings still printed on invoices.
var stateAliases = map[string]string{
	"25":                                  "26",
	"28":                                  "37",
	"dd":                                  "26",
	"dn":                                  "26",
	"daman and diu":                       "26",
	"dadra and nagar haveli":              "26",
	"or":                                  "21",
	"orissa":                              "21",
	"ct":                                  "22",
	"chattisgarh":                         "22",
	"ua":                                  "05",
	"ut":                                  "05",
	"uttaranchal":                         "05",
	"tg":                                  "36",
	"pondicherry":                         "34",
	"new delhi":                           "07",
	"nct of delhi":                        "07",
	"national capital territory of delhi": "07",
	"tamilnadu":                           "33",
	"andaman and nicobar":                 "35",
}

var stateIndex = indexStates()

func indexStates() map[string]*State {
	idx := make(map[string]*State, len(states)*3+len(stateAliases))
	for i := range states {
		s := &states[i]
		idx[s.Code] = s
		idx[cleanState(s.Name)] = s
		idx[strings.ToLower(s.Abbreviation)] = s
	}
	for alias, code := range stateAliases {
		idx[cleanState(alias)] = idx[code]
	}
	return idx
}

func cleanState(s string) string {
	s = strings.ToLower(strings.TrimSpace(s))
	s = strings.ReplaceAll(s, "&", " and ")
	s = strings.Join(strings.Fields(s), " ")
	if len(s) == 1 && s[0] >= '0' && s[0] <= '9' {
		s = "0" + s
	}
	return s
}

// LookupState resolves a state name, abbreviation, or GST state code.
func LookupState(s string) (State, bool) {
	if st, ok := stateIndex[cleanState(s)]; ok {
		return *st, true
	}
	return State{}, false
}

// NormalizeState returns a comparison key for a state. Known states map to
// their lower-case canonical name, so "MH", "27" and "maharashtra" compare
// equal; anything else is trimmed, lower-cased and whitespace-collapsed.
func NormalizeState(s string) string {
	c := cleanState(s)
	if st, ok := stateIndex[c]; ok {
		return strings.ToLower(st.Name)
	}
	return c
}

// StateFromGSTIN returns the state encoded in the first two digits of a GSTIN.
func StateFromGSTIN(gstin string) (State, bool) {
	gstin = strings.TrimSpace(gstin)
	if len(gstin) < 2 {
		return State{}, false
	}
	code := gstin[:2]
	if code[0] < '0' || code[0] > '9' || code[1] < '0' || code[1] > '9' {
		return State{}, false
	}
	st, ok := stateIndex[code]
	if !ok {
		return State{}, false
	}
	return *st, true
}

// States returns the registry in GST code order.
func States() []State {
	out := make([]State, len(states))
	copy(out, states)
	return out
}
