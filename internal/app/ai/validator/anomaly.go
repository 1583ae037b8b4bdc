package validator

import (
	"regexp"
	"strconv"
)

var (
	bloodPressureRe = regexp.MustCompile(`血壓[：:]?\s*(\d+)/(\d+)`)
	heartRateRe     = regexp.MustCompile(`心率[：:]?\s*(\d+)`)
	temperatureRe   = regexp.MustCompile(`體溫[：:]?\s*(\d+\.?\d*)`)
	bloodSugarRe    = regexp.MustCompile(`血糖[：:]?\s*(\d+\.?\d*)`)
)

// DetectAnomalies scans the summary for vital-sign values outside their
// normal ranges. Severity is "high" when the value is outside the critical
// range too, "medium" otherwise.
func DetectAnomalies(summary string) []Anomaly {
	anomalies := []Anomaly{}

	for _, m := range bloodPressureRe.FindAllStringSubmatchIndex(summary, -1) {
		systolicStr := summary[m[2]:m[3]]
		diastolicStr := summary[m[4]:m[5]]
		systolic, _ := strconv.Atoi(systolicStr)
		if systolic < 90 || systolic > 140 {
			severity := "medium"
			if systolic > 180 || systolic < 60 {
				severity = "high"
			}
			anomalies = append(anomalies, Anomaly{
				Value:       systolicStr + "/" + diastolicStr,
				NormalRange: "90-140/60-90",
				Severity:    severity,
				Suggestion:  "請確認血壓數值是否正確",
				Position:    [2]int{m[0], m[1]},
			})
		}
	}

	for _, m := range heartRateRe.FindAllStringSubmatchIndex(summary, -1) {
		hrStr := summary[m[2]:m[3]]
		hr, _ := strconv.Atoi(hrStr)
		if hr < 60 || hr > 100 {
			severity := "medium"
			if hr > 150 || hr < 40 {
				severity = "high"
			}
			anomalies = append(anomalies, Anomaly{
				Value:       hrStr,
				NormalRange: "60-100",
				Severity:    severity,
				Suggestion:  "請確認心率數值是否正確",
				Position:    [2]int{m[0], m[1]},
			})
		}
	}

	for _, m := range temperatureRe.FindAllStringSubmatchIndex(summary, -1) {
		tempStr := summary[m[2]:m[3]]
		temp, _ := strconv.ParseFloat(tempStr, 64)
		if temp < 36.0 || temp > 37.5 {
			severity := "medium"
			if temp > 40 || temp < 35 {
				severity = "high"
			}
			anomalies = append(anomalies, Anomaly{
				Value:       tempStr,
				NormalRange: "36.0-37.5°C",
				Severity:    severity,
				Suggestion:  "請確認體溫數值是否正確",
				Position:    [2]int{m[0], m[1]},
			})
		}
	}

	for _, m := range bloodSugarRe.FindAllStringSubmatchIndex(summary, -1) {
		bsStr := summary[m[2]:m[3]]
		bs, _ := strconv.ParseFloat(bsStr, 64)
		if bs < 70 || bs > 140 {
			severity := "medium"
			if bs > 300 || bs < 50 {
				severity = "high"
			}
			anomalies = append(anomalies, Anomaly{
				Value:       bsStr,
				NormalRange: "70-140 mg/dL",
				Severity:    severity,
				Suggestion:  "請確認血糖數值是否正確",
				Position:    [2]int{m[0], m[1]},
			})
		}
	}

	return anomalies
}
