package importer

import "strings"

// prefixTables maps the two-letter data-file code (the base name of a .dat
// member) to its target table. Exhaustive for the known ULS record types;
// codes absent here are skipped with a warning at import time.
var prefixTables = map[string]string{
	"A2": "PUBACC_A2", "A3": "PUBACC_A3", "AC": "PUBACC_AC",
	"AD": "PUBACC_AD", "AG": "PUBACC_AG", "AH": "PUBACC_AH",
	"AM": "PUBACC_AM", "AN": "PUBACC_AN", "AP": "PUBACC_AP",
	"AS": "PUBACC_AS", "AT": "PUBACC_AT", "BC": "PUBACC_BC",
	"BD": "PUBACC_BD", "BE": "PUBACC_BE", "BF": "PUBACC_BF",
	"BL": "PUBACC_BL", "BO": "PUBACC_BO", "BT": "PUBACC_BT",
	"CD": "PUBACC_CD", "CF": "PUBACC_CF", "CG": "PUBACC_CG",
	"CO": "PUBACC_CO", "CP": "PUBACC_CP", "CS": "PUBACC_CS",
	"EC": "PUBACC_EC", "EM": "PUBACC_EM", "EN": "PUBACC_EN",
	"F2": "PUBACC_F2", "F3": "PUBACC_F3", "F4": "PUBACC_F4",
	"F5": "PUBACC_F5", "F6": "PUBACC_F6", "FA": "PUBACC_FA",
	"FC": "PUBACC_FC", "FF": "PUBACC_FF", "FR": "PUBACC_FR",
	"FS": "PUBACC_FS", "FT": "PUBACC_FT", "HD": "PUBACC_HD",
	"HS": "PUBACC_HS", "IA": "PUBACC_IA", "IF": "PUBACC_IF",
	"IR": "PUBACC_IR", "L2": "PUBACC_L2", "L3": "PUBACC_L3",
	"L4": "PUBACC_L4", "L5": "PUBACC_L5", "L6": "PUBACC_L6",
	"LA": "PUBACC_LA", "LC": "PUBACC_LC", "LD": "PUBACC_LD",
	"LF": "PUBACC_LF", "LH": "PUBACC_LH", "LL": "PUBACC_LL",
	"LM": "PUBACC_LM", "LO": "PUBACC_LO", "LS": "PUBACC_LS",
	"MC": "PUBACC_MC", "ME": "PUBACC_ME", "MF": "PUBACC_MF",
	"MH": "PUBACC_MH", "MI": "PUBACC_MI", "MK": "PUBACC_MK",
	"MP": "PUBACC_MP", "MW": "PUBACC_MW", "O2": "PUBACC_O2",
	"OP": "PUBACC_OP", "P2": "PUBACC_P2", "PA": "PUBACC_PA",
	"PC": "PUBACC_PC", "RA": "PUBACC_RA", "RC": "PUBACC_RC",
	"RE": "PUBACC_RE", "RI": "PUBACC_RI", "RZ": "PUBACC_RZ",
	"SC": "PUBACC_SC", "SE": "PUBACC_SE", "SF": "PUBACC_SF",
	"SG": "PUBACC_SG", "SH": "PUBACC_SH", "SI": "PUBACC_SI",
	"SR": "PUBACC_SR", "ST": "PUBACC_ST", "SV": "PUBACC_SV",
	"TA": "PUBACC_TA", "TL": "PUBACC_TL", "TP": "PUBACC_TP",
	"UA": "PUBACC_UA", "VC": "PUBACC_VC",
}

// TableForPrefix resolves a data-file code to its table name.
func TableForPrefix(code string) (string, bool) {
	t, ok := prefixTables[strings.ToUpper(strings.TrimSpace(code))]
	return t, ok
}
