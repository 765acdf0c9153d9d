package dashboard

import (
	"encoding/json"
	"log"
	"net/http"

	"github.com/rahmatd/go-storefront/app/helpers"
	"github.com/rahmatd/go-storefront/app/models"
)

func (h *DashboardHandler) Customize(w http.ResponseWriter, r *http.Request) {
	store, ok := h.resolveStore(w, r)
	if !ok {
		return
	}

	theme, err := h.themeRepo.GetOrCreateByStore(r.Context(), store)
	if err != nil {
		log.Printf("Dashboard.Customize: failed to load theme: %v", err)
		http.Error(w, "Failed to load theme", http.StatusInternalServerError)
		return
	}

	data := helpers.GetBaseData(r, map[string]interface{}{
		"Title": store.Name + " - Customize",
		"Store": store,
		"Theme": theme,
	})

	_ = h.render.HTML(w, http.StatusOK, "dashboard/customize", data)
}

func (h *DashboardHandler) CustomizePost(w http.ResponseWriter, r *http.Request) {
	store, ok := h.resolveStore(w, r)
	if !ok {
		return
	}
	customizePath := h.basePath(store) + "/customize/"

	theme, err := h.themeRepo.GetOrCreateByStore(r.Context(), store)
	if err != nil {
		log.Printf("Dashboard.CustomizePost: failed to load theme: %v", err)
		http.Error(w, "Failed to load theme", http.StatusInternalServerError)
		return
	}

	if err := r.ParseForm(); err != nil {
		helpers.RedirectWithMessage(w, r, customizePath, "error", "Error saving theme: could not read form.")
		return
	}

	if v := r.PostFormValue("primary_color"); v != "" {
		theme.PrimaryColor = v
	}
	if v := r.PostFormValue("secondary_color"); v != "" {
		theme.SecondaryColor = v
	}
	if v := r.PostFormValue("background_color"); v != "" {
		theme.BackgroundColor = v
	}
	if v := r.PostFormValue("text_color"); v != "" {
		theme.TextColor = v
	}
	if v := r.PostFormValue("font_family"); v != "" {
		theme.FontFamily = v
	}
	if v := r.PostFormValue("layout_width"); v == models.LayoutWidthBoxed || v == models.LayoutWidthFluid {
		theme.LayoutWidth = v
	}

	if sectionsJSON := r.PostFormValue("sections_json"); sectionsJSON != "" {
		var sections models.ThemeSections
		if err := json.Unmarshal([]byte(sectionsJSON), &sections); err != nil {
			helpers.RedirectWithMessage(w, r, customizePath, "error", "Error saving theme: invalid sections data.")
			return
		}
		theme.Sections = sections
	}

	if err := h.themeRepo.Update(r.Context(), theme); err != nil {
		log.Printf("Dashboard.CustomizePost: failed to save theme: %v", err)
		helpers.RedirectWithMessage(w, r, customizePath, "error", "Error saving theme: could not save.")
		return
	}

	helpers.RedirectWithMessage(w, r, customizePath, "success", "Theme updated successfully!")
}
