package renderer

import (
	"html/template"

	"github.com/leekchan/accounting"
	"github.com/shopspring/decimal"
	"github.com/unrolled/render"
)

func New() *render.Render {
	money := accounting.Accounting{Symbol: "$", Precision: 2}

	return render.New(render.Options{
		Layout:     "layout",
		Extensions: []string{".html"},
		Funcs: []template.FuncMap{
			{
				"money": func(d decimal.Decimal) string {
					return money.FormatMoneyDecimal(d)
				},
				"until": func(count int) []int {
					items := make([]int, count)
					for i := 0; i < count; i++ {
						items[i] = i
					}
					return items
				},
				"add": func(a, b int) int { return a + b },
				"sub": func(a, b int) int { return a - b },
			},
		},
	})
}
