package email

// ReceiptEmailTemplate expects: buyer name, purchase key, transaction
// id, formatted amount, currency, item rows HTML.
const ReceiptEmailTemplate = `
<!DOCTYPE html>
<html lang="en">
<head>
    <meta charset="UTF-8">
    <meta name="viewport" content="width=device-width, initial-scale=1.0">
    <title>Purchase Receipt</title>
</head>
<body style="margin: 0; padding: 0; background-color: #f4f4f4; font-family: Arial, sans-serif;">
    <table role="presentation" width="100%%" cellpadding="0" cellspacing="0">
        <tr>
            <td align="center" style="padding: 24px;">
                <table role="presentation" width="600" cellpadding="0" cellspacing="0" style="background-color: #ffffff; border-radius: 6px; padding: 32px;">
                    <tr>
                        <td>
                            <h2 style="margin-top: 0; color: #333333;">Thank you for your purchase, %s!</h2>
                            <p style="color: #555555;">Your payment has been processed successfully.</p>
                            <p style="color: #555555;">
                                <strong>Order reference:</strong> %s<br>
                                <strong>Transaction ID:</strong> %s<br>
                                <strong>Total:</strong> %s %s
                            </p>
                            <table width="100%%" cellpadding="8" cellspacing="0" style="border-collapse: collapse; margin-top: 16px;">
                                <thead>
                                    <tr style="background-color: #f0f0f0;">
                                        <th align="left" style="border-bottom: 1px solid #dddddd;">Item</th>
                                        <th align="right" style="border-bottom: 1px solid #dddddd;">Qty</th>
                                        <th align="right" style="border-bottom: 1px solid #dddddd;">Price</th>
                                    </tr>
                                </thead>
                                <tbody>
%s
                                </tbody>
                            </table>
                            <p style="color: #999999; font-size: 12px; margin-top: 32px;">
                                If you have any questions about this receipt, reply to this email.
                            </p>
                        </td>
                    </tr>
                </table>
            </td>
        </tr>
    </table>
</body>
</html>
`
