package cli

import (
	"context"
	"fmt"
	"io"
	"strconv"

	"tablecrm_cashier/internal/pos"
)

func dispatch(ctx context.Context, service *pos.Service, args []string, out io.Writer) error {
	if len(args) == 0 {
		return nil
	}

	switch args[0] {
	case "help":
		writeHelp(out)
	case "refresh":
		service.Refresh(ctx)
		writeReferenceSummary(out, service.References())
	case "orgs":
		writeOrganizations(out, service.References().Organizations)
	case "warehouses":
		writeWarehouses(out, service.References().Warehouses)
	case "prices":
		writePriceTypes(out, service.References().PriceTypes)
	case "items":
		writeCatalog(out, service.References().CatalogItems)
	case "customers":
		writeCustomers(out, service.Candidates())
	case "search":
		if len(args) < 2 {
			return fmt.Errorf("использование: search <телефон>")
		}
		service.SearchCustomers(ctx, args[1])
		writeCustomers(out, service.Candidates())
	case "use":
		return useReference(service, args[1:])
	case "add":
		service.AddLine()
		writeLines(out, service.Lines())
	case "set":
		return setLineField(service, args[1:], out)
	case "rm":
		if len(args) < 2 {
			return fmt.Errorf("использование: rm <номер строки>")
		}
		index, err := parseLineIndex(args[1], len(service.Lines()))
		if err != nil {
			return err
		}
		if err := service.RemoveLine(index); err != nil {
			return err
		}
		writeLines(out, service.Lines())
	case "lines":
		writeLines(out, service.Lines())
	case "total":
		fmt.Fprintf(out, "Итого: %.2f ₽\n", service.Total())
	case "submit":
		return submitOrder(ctx, service, false, out)
	case "post":
		return submitOrder(ctx, service, true, out)
	case "logout":
		service.Session().Logout()
		fmt.Fprintln(out, "Вы вышли из кассы.")
	default:
		return fmt.Errorf("неизвестная команда: %s (help — список команд)", args[0])
	}
	return nil
}

func useReference(service *pos.Service, args []string) error {
	if len(args) < 2 {
		return fmt.Errorf("использование: use customer|org|warehouse|paybox|price <id>")
	}

	kind, id := args[0], args[1]
	switch kind {
	case "customer":
		service.SetCustomer(id)
	case "org":
		service.SetOrganization(id)
	case "warehouse":
		service.SetWarehouse(id)
	case "paybox":
		service.SetPaybox(id)
	case "price":
		service.SetPriceType(id)
	default:
		return fmt.Errorf("неизвестный справочник: %s", kind)
	}
	return nil
}

func setLineField(service *pos.Service, args []string, out io.Writer) error {
	if len(args) < 3 {
		return fmt.Errorf("использование: set <номер строки> item|price|qty|discount <значение>")
	}

	index, err := parseLineIndex(args[0], len(service.Lines()))
	if err != nil {
		return err
	}

	field, err := lineFieldByName(args[1])
	if err != nil {
		return err
	}

	if err := service.UpdateLine(index, field, args[2]); err != nil {
		return err
	}
	writeLines(out, service.Lines())
	return nil
}

func submitOrder(ctx context.Context, service *pos.Service, posted bool, out io.Writer) error {
	if len(service.Lines()) == 0 {
		fmt.Fprintln(out, "Добавьте хотя бы один товар перед отправкой.")
		return nil
	}
	conf := service.Submit(ctx, posted)
	writeConfirmation(out, conf)
	return nil
}

func lineFieldByName(name string) (pos.LineField, error) {
	switch name {
	case "item":
		return pos.FieldCatalog, nil
	case "price":
		return pos.FieldPrice, nil
	case "qty", "quantity":
		return pos.FieldQuantity, nil
	case "discount":
		return pos.FieldDiscount, nil
	default:
		return "", fmt.Errorf("неизвестное поле строки: %s", name)
	}
}

// Line numbers are 1-based for the operator.
func parseLineIndex(arg string, count int) (int, error) {
	n, err := strconv.Atoi(arg)
	if err != nil || n < 1 || n > count {
		return 0, fmt.Errorf("нет строки с номером %s", arg)
	}
	return n - 1, nil
}
