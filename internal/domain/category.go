package domain

// DefaultCategoryIcon is used for categories missing from CategoryIcons.
const DefaultCategoryIcon = "fas fa-briefcase"

// CategoryIcons maps the catalog's category names to their display icon.
var CategoryIcons = map[string]string{
	"Sviluppo Software": "fas fa-code",
	"Design & UX":       "fas fa-paint-brush",
	"Marketing":         "fas fa-chart-line",
	"Risorse Umane":     "fas fa-users",
	"Ingegneria":        "fas fa-cogs",
	"Vendite":           "fas fa-handshake",
	"Sanità":            "fas fa-heartbeat",
	"Educazione":        "fas fa-graduation-cap",
	"Finanza":           "fas fa-dollar-sign",
	"Altro":             "fas fa-briefcase",
}

// CategoryIcon returns the icon for name.
func CategoryIcon(name string) string {
	if icon, ok := CategoryIcons[name]; ok {
		return icon
	}
	return DefaultCategoryIcon
}

// AggregateCategories counts active jobs per category. jobs must be in ascending id
// order; categories are returned in order of first appearance.
func AggregateCategories(jobs []Job) []JobCategory {
	index := make(map[string]int)
	var out []JobCategory
	for _, j := range jobs {
		if !j.IsActive {
			continue
		}
		if i, ok := index[j.Category]; ok {
			out[i].Count++
			continue
		}
		index[j.Category] = len(out)
		out = append(out, JobCategory{Name: j.Category, Count: 1, Icon: CategoryIcon(j.Category)})
	}
	return out
}
