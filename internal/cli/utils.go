package cli

import (
	"fmt"
	"io"

	"tablecrm_cashier/internal/pos"
)

func writeHelp(out io.Writer) {
	fmt.Fprintln(out, "Команды:")
	fmt.Fprintln(out, "  refresh                         — перечитать справочники из истории продаж")
	fmt.Fprintln(out, "  orgs | warehouses | prices      — списки организаций, складов, типов цен")
	fmt.Fprintln(out, "  items | customers               — товары и кандидаты-клиенты")
	fmt.Fprintln(out, "  search <телефон>                — поиск клиента по телефону (от 10 символов)")
	fmt.Fprintln(out, "  use customer|org|warehouse|paybox|price <id>")
	fmt.Fprintln(out, "  add                             — добавить строку заказа")
	fmt.Fprintln(out, "  set <n> item|price|qty|discount <значение>")
	fmt.Fprintln(out, "  rm <n> | lines | total")
	fmt.Fprintln(out, "  submit                          — создать продажу")
	fmt.Fprintln(out, "  post                            — создать и провести")
	fmt.Fprintln(out, "  logout | exit")
}

func writeReferenceSummary(out io.Writer, refs pos.ReferenceData) {
	fmt.Fprintf(out, "Справочники: организаций=%d, складов=%d, клиентов=%d, типов цен=%d, товаров=%d\n",
		len(refs.Organizations), len(refs.Warehouses), len(refs.Customers),
		len(refs.PriceTypes), len(refs.CatalogItems))
}

func writeOrganizations(out io.Writer, orgs []pos.Organization) {
	if len(orgs) == 0 {
		fmt.Fprintln(out, "- (нет данных)")
		return
	}
	for i, org := range orgs {
		fmt.Fprintf(out, "%d) %s (id=%d)\n", i+1, org.Name, org.ID)
	}
}

func writeWarehouses(out io.Writer, warehouses []pos.Warehouse) {
	if len(warehouses) == 0 {
		fmt.Fprintln(out, "- (нет данных)")
		return
	}
	for i, w := range warehouses {
		fmt.Fprintf(out, "%d) %s (id=%d)\n", i+1, w.Name, w.ID)
	}
}

func writePriceTypes(out io.Writer, priceTypes []pos.PriceType) {
	if len(priceTypes) == 0 {
		fmt.Fprintln(out, "- (нет данных)")
		return
	}
	for i, pt := range priceTypes {
		fmt.Fprintf(out, "%d) %s (id=%d)\n", i+1, pt.Name, pt.ID)
	}
}

func writeCatalog(out io.Writer, items []pos.CatalogItem) {
	if len(items) == 0 {
		fmt.Fprintln(out, "- (нет данных)")
		return
	}
	for i, item := range items {
		fmt.Fprintf(out, "%d) %s — %.2f ₽ (id=%d)\n", i+1, item.Name, item.Price, item.ID)
	}
}

func writeCustomers(out io.Writer, customers []pos.Customer) {
	if len(customers) == 0 {
		fmt.Fprintln(out, "- (нет данных)")
		return
	}
	for i, c := range customers {
		fmt.Fprintf(out, "%d) %s — %s (id=%d)\n", i+1, c.Name, c.Phone, c.ID)
	}
}

func writeLines(out io.Writer, lines []pos.LineItem) {
	if len(lines) == 0 {
		fmt.Fprintln(out, "- (строк нет)")
		return
	}
	for i, line := range lines {
		item := line.Catalog
		if item == "" {
			item = "-"
		}
		fmt.Fprintf(out, "%d) товар=%s цена=%s кол-во=%s скидка=%s%%\n",
			i+1, item, line.Price, line.Quantity, line.Discount)
	}
}

func writeConfirmation(out io.Writer, conf pos.Confirmation) {
	label := "Заказ создан!"
	if conf.Posted {
		label = "Заказ создан и проведен!"
	}

	if conf.Outcome == pos.OutcomeSimulated {
		fmt.Fprintf(out, "ДЕМО: %s\n", label)
		fmt.Fprintf(out, "Сумма: %.2f ₽\n", conf.Total)
		fmt.Fprintf(out, "Локальный номер: %s\n", conf.Reference)
		return
	}
	fmt.Fprintf(out, "%s\n", label)
	fmt.Fprintf(out, "Сумма: %.2f ₽\n", conf.Total)
}
