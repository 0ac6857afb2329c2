// Package prompts holds the essay prompt bank. Prompts are authored material
// shipped with the client; the backend only ever sees the selected prompt text
// alongside the essay body.
package prompts

var bank = map[string][]string{
	"familia": {
		"Discuta los requisitos legales para establecer la custodia compartida en Puerto Rico y los factores que el tribunal considera para determinar el mejor interés del menor.",
		"Analice las causales de divorcio en Puerto Rico y explique el procedimiento legal para obtener un divorcio por mutuo consentimiento.",
	},
	"sucesiones": {
		"Explique la diferencia entre sucesión testamentaria e intestada en Puerto Rico, y los requisitos formales para la validez de un testamento.",
		"Discuta los derechos hereditarios de los legitimarios en Puerto Rico y las limitaciones a la libertad de testar.",
	},
	"reales": {
		"Analice los requisitos para adquirir propiedad por prescripción adquisitiva en Puerto Rico y las diferencias entre prescripción ordinaria y extraordinaria.",
		"Explique el concepto de servidumbre en el derecho puertorriqueño y los diferentes tipos de servidumbres que existen.",
	},
	"hipoteca": {
		"Discuta los elementos esenciales de un contrato de hipoteca en Puerto Rico y el procedimiento de ejecución hipotecaria.",
		"Explique el concepto de hipoteca legal en Puerto Rico y los casos en que se aplica.",
	},
	"obligaciones": {
		"Analice los elementos esenciales de un contrato válido en Puerto Rico y las consecuencias de la nulidad contractual.",
		"Explique el concepto de incumplimiento de contrato y los remedios disponibles para el acreedor en Puerto Rico.",
	},
	"etica": {
		"Discuta las normas éticas que rigen el conflicto de intereses en la práctica legal en Puerto Rico.",
		"Analice las obligaciones éticas del abogado respecto a la confidencialidad del cliente y las excepciones a esta regla.",
	},
	"constitucional": {
		"Analice el derecho fundamental a la libertad de expresión en Puerto Rico y sus limitaciones constitucionales.",
		"Explique el concepto de igual protección bajo la Constitución de Puerto Rico y su aplicación en casos de discriminación.",
	},
	"administrativo": {
		"Discuta los principios que rigen el procedimiento administrativo en Puerto Rico y los derechos de las partes en un proceso administrativo.",
		"Explique el concepto de revisión judicial de decisiones administrativas y los estándares de revisión aplicables.",
	},
	"danos": {
		"Analice los elementos de la responsabilidad extracontractual bajo el Código Civil de Puerto Rico.",
		"Explique los diferentes tipos de daños resarcibles en Puerto Rico y cómo se determina la cuantía de la compensación.",
	},
	"penal": {
		"Discuta los elementos del delito de asesinato en Puerto Rico y las diferencias entre asesinato en primer grado y segundo grado.",
		"Analice las defensas disponibles en casos criminales en Puerto Rico, incluyendo legítima defensa y estado de necesidad.",
	},
	"proc_penal": {
		"Explique los derechos constitucionales del acusado durante el proceso criminal en Puerto Rico.",
		"Discuta el procedimiento de arresto, registro e incautación bajo la Constitución de Puerto Rico.",
	},
	"evidencia": {
		"Analice las reglas sobre admisibilidad de evidencia de referencia en Puerto Rico y sus excepciones.",
		"Explique el concepto de privilegio abogado-cliente y su aplicación en procedimientos judiciales en Puerto Rico.",
	},
	"proc_civil": {
		"Discuta los requisitos de jurisdicción y competencia en procedimientos civiles en Puerto Rico.",
		"Analice el procedimiento de descubrimiento de prueba bajo las Reglas de Procedimiento Civil de Puerto Rico.",
	},
}

// ForSubject returns the prompts for a subject code. Unknown codes yield an
// empty slice, never nil surprises downstream.
func ForSubject(code string) []string {
	entries, ok := bank[code]
	if !ok {
		return []string{}
	}
	out := make([]string, len(entries))
	copy(out, entries)
	return out
}

// Default returns the first prompt for a subject, the one pre-selected when a
// subject is chosen.
func Default(code string) (string, bool) {
	entries := bank[code]
	if len(entries) == 0 {
		return "", false
	}
	return entries[0], true
}
