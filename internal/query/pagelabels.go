package query

import "strconv"

// Ellipsis is the gap marker emitted by PageLabels.
const Ellipsis = "..."

const maxVisiblePages = 5

// PageLabels builds the compact pager labels: first page, a window around
// the current page, the last page, with ellipsis markers for the gaps.
func PageLabels(currentPage, totalPages int) []string {
	if totalPages < 1 {
		return []string{}
	}

	labels := []string{}
	if totalPages <= maxVisiblePages {
		for i := 1; i <= totalPages; i++ {
			labels = append(labels, strconv.Itoa(i))
		}
		return labels
	}

	labels = append(labels, "1")

	start := currentPage - 1
	if start < 2 {
		start = 2
	}
	end := currentPage + 1
	if end > totalPages-1 {
		end = totalPages - 1
	}

	if start > 2 {
		labels = append(labels, Ellipsis)
	}
	for i := start; i <= end; i++ {
		labels = append(labels, strconv.Itoa(i))
	}
	if end < totalPages-1 {
		labels = append(labels, Ellipsis)
	}

	labels = append(labels, strconv.Itoa(totalPages))
	return labels
}
