package meter

// ShortReadData is the fixed projection of fields §6 requires after a short
// or full readout, extended per SPEC_FULL.md §11.1 with the fields the
// original Tauri implementation's ShortReadData carried beyond the core
// projection: per-tariff energy, bidirectional export energy, reactive
// energy for combination meters, per-phase instantaneous values, and
// max-demand export. Fields the meter doesn't report stay at their zero
// value — all are plain floats/strings, not pointers; where "absent vs.
// zero" is itself meaningful (export, reactive and max-demand export
// readings) a separate Has* flag records whether the meter reported them.
type ShortReadData struct {
	// Identity
	SerialNumber    string
	ProgramVersion  string
	ProductionDate  string
	CalibrationDate string

	// Clock
	MeterDate  string
	MeterTime  string
	DayOfWeek  string

	// Active energy import
	ActiveEnergyImportTotal float64
	ActiveEnergyImportT1    float64
	ActiveEnergyImportT2    float64
	ActiveEnergyImportT3    float64
	ActiveEnergyImportT4    float64

	// Active energy export (bidirectional meters)
	HasExportEnergy          bool
	ActiveEnergyExportTotal  float64
	ActiveEnergyExportT1     float64
	ActiveEnergyExportT2     float64
	ActiveEnergyExportT3     float64
	ActiveEnergyExportT4     float64

	// Reactive energy (Kombi combination meters)
	HasReactiveEnergy          bool
	ReactiveInductiveImport    float64
	ReactiveCapacitiveImport   float64
	ReactiveInductiveExport    float64
	ReactiveCapacitiveExport   float64

	// Max demand
	MaxDemandImport          float64
	MaxDemandImportTimestamp string
	HasMaxDemandExport       bool
	MaxDemandExport          float64
	MaxDemandExportTimestamp string

	// Instantaneous values
	VoltageL1     float64
	VoltageL2     float64
	VoltageL3     float64
	CurrentL1     float64
	CurrentL2     float64
	CurrentL3     float64
	Frequency     float64
	PowerFactorL1 float64
	PowerFactorL2 float64
	PowerFactorL3 float64

	// Status
	FFCode        string
	GFCode        string
	BatteryStatus string // "low" | "full"
	RelayStatus   string // "active" | "passive" | ""

	// TimeOf09xReadMillis is the epoch-ms instant at which both 0.9.1 and
	// 0.9.2 had first appeared in the receive buffer, or 0 if never seen.
	TimeOf09xReadMillis int64
}

// buildShortReadData projects the fixed field set from a parsed OBIS item
// list. Item lookups are by exact code; items not present leave the
// corresponding field at its zero value.
func buildShortReadData(items []ObisItem, nineXMillis int64) ShortReadData {
	idx := make(map[string]ObisItem, len(items))
	for _, it := range items {
		idx[it.Code] = it
	}
	val := func(code string) string { return idx[code].Value }
	num := func(code string) float64 { return parseFloatLenient(idx[code].Value) }
	has := func(code string) bool { _, ok := idx[code]; return ok }

	serial := val("0.0.0")
	if serial == "" {
		serial = val("96.1.0") // §9 Design Notes: keep this fallback
	}

	d := ShortReadData{
		SerialNumber:    serial,
		ProgramVersion:  val("0.2.0"),
		ProductionDate:  val("96.1.3"),
		CalibrationDate: val("96.2.5"),

		MeterTime: val("0.9.1"),
		MeterDate: val("0.9.2"),
		DayOfWeek: val("0.9.5"),

		ActiveEnergyImportTotal: num("1.8.0"),
		ActiveEnergyImportT1:    num("1.8.1"),
		ActiveEnergyImportT2:    num("1.8.2"),
		ActiveEnergyImportT3:    num("1.8.3"),
		ActiveEnergyImportT4:    num("1.8.4"),

		MaxDemandImport: num("1.6.0"),

		VoltageL1: num("32.7.0"),
		VoltageL2: num("52.7.0"),
		VoltageL3: num("72.7.0"),
		CurrentL1: num("31.7.0"),
		CurrentL2: num("51.7.0"),
		CurrentL3: num("71.7.0"),
		Frequency: num("14.7.0"),

		PowerFactorL1: num("33.7.0"),
		PowerFactorL2: num("53.7.0"),
		PowerFactorL3: num("73.7.0"),

		FFCode: val("F.F.0"),
		GFCode: val("F.F.1"),

		TimeOf09xReadMillis: nineXMillis,
	}

	if has("2.8.0") {
		d.HasExportEnergy = true
		d.ActiveEnergyExportTotal = num("2.8.0")
		d.ActiveEnergyExportT1 = num("2.8.1")
		d.ActiveEnergyExportT2 = num("2.8.2")
		d.ActiveEnergyExportT3 = num("2.8.3")
		d.ActiveEnergyExportT4 = num("2.8.4")
	}

	if has("3.8.0") || has("4.8.0") {
		d.HasReactiveEnergy = true
		d.ReactiveInductiveImport = num("3.8.0")
		d.ReactiveCapacitiveImport = num("4.8.0")
		d.ReactiveInductiveExport = num("3.8.0*2")
		d.ReactiveCapacitiveExport = num("4.8.0*2")
	}

	if has("2.6.0") {
		d.HasMaxDemandExport = true
		d.MaxDemandExport = num("2.6.0")
	}

	// battery_status derived from 96.6.1, matching the original: a value
	// containing '0' means the backup battery is low.
	if bs := val("96.6.1"); bs != "" {
		if containsByte(bs, '0') {
			d.BatteryStatus = "low"
		} else {
			d.BatteryStatus = "full"
		}
	}

	// relay_status derived from 96.3.10. Two conflicting derivations exist
	// in the original source (one treats "contains '0'" as active, the
	// other "contains '1'"); per §9 Design Notes this implementation picks
	// the MASS convention: '0' => active (closed).
	if rs := val("96.3.10"); rs != "" {
		switch {
		case containsByte(rs, '0'):
			d.RelayStatus = "active"
		case containsByte(rs, '1'):
			d.RelayStatus = "passive"
		}
	}

	return d
}

func containsByte(s string, b byte) bool {
	for i := 0; i < len(s); i++ {
		if s[i] == b {
			return true
		}
	}
	return false
}

func parseFloatLenient(s string) float64 {
	if s == "" {
		return 0
	}
	v, err := parseFloat(s)
	if err != nil {
		return 0
	}
	return v
}
