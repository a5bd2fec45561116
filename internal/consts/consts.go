package consts

const (
	FARADAY     = 96485.3321233100184 // Faraday constant (C/mol)
	GAS         = 8.314462618        // Molar gas constant (J/(mol K))
	KELVIN      = 273.15             // Kelvin temperature (K)
	TEMPERATURE = KELVIN + 25.0      // Cell temperature (K)
	ALPHA       = 0.5                // Charge transfer coefficient
)

// THERMAL is RT/F at the cell temperature (V)
const THERMAL = GAS * TEMPERATURE / FARADAY
