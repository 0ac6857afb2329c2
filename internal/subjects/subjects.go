package subjects

// The Puerto Rico bar exam covers a fixed set of thirteen subject areas. Codes
// are the short tokens the backend uses in paths and payloads; names are the
// Spanish display labels.
const (
	Familia        = "familia"
	Sucesiones     = "sucesiones"
	Reales         = "reales"
	Hipoteca       = "hipoteca"
	Obligaciones   = "obligaciones"
	Etica          = "etica"
	Constitucional = "constitucional"
	Administrativo = "administrativo"
	Danos          = "danos"
	Penal          = "penal"
	ProcPenal      = "proc_penal"
	Evidencia      = "evidencia"
	ProcCivil      = "proc_civil"
)

var names = map[string]string{
	Familia:        "Derecho de Familia",
	Sucesiones:     "Sucesiones",
	Reales:         "Derechos Reales",
	Hipoteca:       "Hipoteca",
	Obligaciones:   "Obligaciones & Contratos",
	Etica:          "Ética",
	Constitucional: "Derecho Constitucional",
	Administrativo: "Derecho Administrativo",
	Danos:          "Daños y Perjuicios",
	Penal:          "Derecho Penal",
	ProcPenal:      "Procedimiento Penal",
	Evidencia:      "Evidencia",
	ProcCivil:      "Procedimiento Civil",
}

var ordered = []string{
	Familia, Sucesiones, Reales, Hipoteca, Obligaciones, Etica,
	Constitucional, Administrativo, Danos, Penal, ProcPenal, Evidencia, ProcCivil,
}

// Valid reports whether code is one of the thirteen known subject codes.
func Valid(code string) bool {
	_, ok := names[code]
	return ok
}

// Name returns the display label for a subject code, or the code itself when
// the code is unknown so callers always have something to render.
func Name(code string) string {
	if name, ok := names[code]; ok {
		return name
	}
	return code
}

// All returns the subject codes in their canonical display order.
func All() []string {
	out := make([]string, len(ordered))
	copy(out, ordered)
	return out
}
