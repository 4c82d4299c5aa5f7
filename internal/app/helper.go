// internal/app/helper.go
package app

// clamp clamps v into [min, max].
func clamp(v, min, max int) int {
	if v < min {
		return min
	}
	if v > max {
		return max
	}
	return v
}

// podColWidths splits the table width between the pod columns; the name and
// location columns absorb whatever the fixed numeric columns leave over.
func podColWidths(total int) (wName, wLoc, wStatus, wCO2, wTemp, wHum, wTVOC, wNoise int) {
	minName, minLoc, minStatus, minNum := 12, 14, 12, 8
	base := minName + minLoc + minStatus + 5*minNum
	remain := total - base
	if remain < 0 {
		remain = 0
	}

	wName = minName + remain/2
	wLoc = minLoc + remain - remain/2
	wStatus = minStatus
	wCO2, wTemp, wHum, wTVOC, wNoise = minNum, minNum, minNum, minNum, minNum

	wName = clamp(wName, 10, 40)
	wLoc = clamp(wLoc, 10, 40)
	return
}

// chartColWidth fits n columns plus their one-cell gaps into width.
func chartColWidth(n, width int) int {
	if n <= 0 {
		return 1
	}
	return clamp((width+1)/n-1, 1, 6)
}

// labelStep is how many columns apart labels of labelLen runes must be
// written so that they do not run into each other.
func labelStep(labelLen, colWidth int) int {
	return clamp((labelLen+colWidth+1)/(colWidth+1), 1, 1<<16)
}
