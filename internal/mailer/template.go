package mailer

import (
	"fmt"
	"html/template"
	"strings"
)

var confirmationTmpl = template.Must(template.New("confirmation").Funcs(template.FuncMap{
	"money": func(v float64) string { return fmt.Sprintf("$%.2f", v) },
}).Parse(`<html>
<body style="font-family: Arial, sans-serif; color: #333;">
	<h2>Thank you for your order{{if .CustomerName}}, {{.CustomerName}}{{end}}!</h2>
	<p>Your order <strong>{{.OrderNumber}}</strong> has been received.</p>
	<p>Estimated delivery: <strong>{{.EstimatedDelivery}}</strong></p>
	<table cellpadding="6" cellspacing="0" border="1" style="border-collapse: collapse;">
		<tr><th>Product</th><th>Qty</th><th>Price</th></tr>
		{{range .Items}}<tr><td>{{.Name}}</td><td>{{.Quantity}}</td><td>{{money .Price}}</td></tr>
		{{end}}
	</table>
	<p>
		Subtotal: {{money .Subtotal}}<br>
		Shipping: {{money .ShippingCost}}<br>
		<strong>Total: {{money .TotalAmount}}</strong>
	</p>
	<p>
		Shipping address: {{.ShippingAddress}}<br>
		Contact: {{.ContactPhone}}
	</p>
</body>
</html>`))

// renderConfirmation produces the HTML body of the confirmation email.
func renderConfirmation(conf OrderConfirmation) (string, error) {
	var sb strings.Builder
	if err := confirmationTmpl.Execute(&sb, conf); err != nil {
		return "", fmt.Errorf("render confirmation: %w", err)
	}
	return sb.String(), nil
}
