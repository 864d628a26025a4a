package knowledge

const (
	defaultGreetingResponse = "Hello! 👋 Welcome! How can I help you today?"
	defaultFallbackResponse = "Sorry, I don't have an answer for that. " +
		"Please contact us at support@mycompany.com or call +1 (800) 123-4567."
)

var defaultGreetings = []string{
	"hi", "hello", "hey", "hii", "helo", "howdy", "good morning", "good evening", "good afternoon",
}

var defaultEntries = []Entry{
	{"what are your working hours", "We are open Monday to Friday, 9:00 AM to 6:00 PM."},
	{"where are you located", "We are located at 123 Main Street, New York, NY 10001."},
	{"what is your contact number", "You can reach us at +1 (800) 123-4567."},
	{"what is your email address", "Our email address is support@mycompany.com."},
	{"do you offer customer support", "Yes! We offer 24/7 customer support via email and phone."},
	{"what services do you offer", "We offer web development, app development, and digital marketing services."},
	{"how can i place an order", "You can place an order by visiting our website or calling our sales team."},
	{"how do i track my order", "You can track your order by visiting our website and entering your order ID in the 'Track Order' section."},
	{"can i cancel my order", "Yes, you can cancel your order within 24 hours of placing it. Contact support for assistance."},
	{"how do i modify my order", "To modify your order, contact our support team within 12 hours of placing the order."},
	{"do you offer free shipping", "Yes, we offer free shipping on all orders above $50."},
	{"how long does delivery take", "Standard delivery takes 3-5 business days. Express delivery takes 1-2 days."},
	{"do you ship internationally", "Yes, we ship to over 50 countries. International delivery takes 7-14 business days."},
	{"what are the shipping charges", "Shipping is free above $50. Below $50, a flat fee of $5.99 is charged."},
	{"what is your return policy", "We have a 30-day hassle-free return policy for all products."},
	{"how do i return a product", "To return a product, visit our website, go to 'My Orders', and click 'Return Item'."},
	{"when will i get my refund", "Refunds are processed within 5-7 business days after we receive the returned item."},
	{"is there a restocking fee", "No, we do not charge any restocking fee for returns."},
	{"do you have a physical store", "Yes, we have a physical store at our Main Street location. Walk-ins welcome!"},
	{"what payment methods do you accept", "We accept credit cards, debit cards, PayPal, and bank transfers."},
	{"do you offer discounts", "Yes! We offer seasonal discounts and special deals. Subscribe to our newsletter to stay updated."},
	{"do you have a loyalty program", "Yes, our loyalty program gives you points on every purchase which can be redeemed for discounts."},
	{"what are your current offers", "Check our website's 'Offers' section for the latest deals and promotions."},
	{"do you offer gift cards", "Yes, we offer gift cards in denominations of $25, $50, and $100."},
	{"how do i create an account", "Click on 'Sign Up' on our website and fill in your details to create a free account."},
	{"how do i reset my password", "Click on 'Forgot Password' on the login page and follow the instructions sent to your email."},
	{"is my data safe with you", "Yes, we use industry-standard encryption to protect all your personal data."},
}

type Entry struct {
	Question string `yaml:"question" validate:"required"`
	Answer   string `yaml:"answer" validate:"required"`
}

type fileFormat struct {
	GreetingResponse string   `yaml:"greeting_response"`
	FallbackResponse string   `yaml:"fallback_response"`
	Greetings        []string `yaml:"greetings" validate:"omitempty,dive,required"`
	Entries          []Entry  `yaml:"entries" validate:"required,min=1,dive"`
}
