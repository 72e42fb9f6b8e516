package seeders

import (
	"moodyme/backend/internal/models"
	mmlog "moodyme/backend/pkg/log"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

// defaultContentPages are the starter pages for a fresh MoodyMe install, one
// per content type. Admins edit them from the back office afterwards.
var defaultContentPages = []models.Content{
	{
		Type:     models.ContentAboutUs,
		Title:    "About MoodyMe",
		Body:     "Welcome to MoodyMe! We are a platform dedicated to helping you track and understand your mood patterns. Our mission is to provide you with insights into your emotional well-being and help you lead a healthier, more balanced life. With advanced analytics and personalized recommendations, MoodyMe is your companion on the journey to better mental health.",
		IsActive: true,
	},
	{
		Type:     models.ContentHelpSupport,
		Title:    "Help & Support",
		Body:     "FAQ:\n1. How do I track my mood?\nSimply open the app and select your current mood from the options provided.\n\n2. Can I export my mood history?\nYes, you can export your data from account settings.\n\n3. Is my data secure?\nWe use industry-standard encryption to protect your data.\n\n4. How often should I log my mood?\nWe recommend at least once daily for best insights.\n\nFor further assistance, contact us at support@moodyme.com",
		IsActive: true,
	},
	{
		Type:     models.ContentPrivacyPolicy,
		Title:    "Privacy Policy",
		Body:     "Privacy Policy for MoodyMe\n\nLast Updated: November 2024\n\n1. Introduction\nMoodyMe operates the MoodyMe application. This page informs you of our policies regarding the collection, use, and disclosure of personal data.\n\n2. Information Collection\nWe collect name, email, phone number, mood entries, and usage data.\n\n3. Data Security\nWe use industry-standard encryption to protect all personal data.\n\n4. Your Rights\nYou have the right to access, correct, or delete your personal data.\n\n5. Contact\nFor privacy concerns, contact privacy@moodyme.com",
		IsActive: true,
	},
	{
		Type:     models.ContentHomeScreen,
		Title:    "Home Screen Welcome",
		Body:     "Welcome back to MoodyMe! Track your daily mood, discover patterns, and gain valuable insights into your emotional well-being. Start by logging your mood today and build a comprehensive history of your emotional state. Your journey to better mental health starts here!",
		IsActive: true,
	},
	{
		Type:     models.ContentSplashScreen,
		Title:    "Splash Screen Message",
		Body:     "Understand Your Mood, Improve Your Life. Welcome to MoodyMe - Your Personal Mood Tracking Companion. Track daily moods, discover patterns, and gain insights into your emotional well-being.",
		IsActive: true,
	},
	{
		Type:     models.ContentSignupMessage,
		Title:    "Signup Welcome Message",
		Body:     "Thank you for joining MoodyMe! We're excited to help you track and understand your mood patterns. Let's get started by setting up your profile and logging your first mood entry. You're just a few steps away from gaining valuable insights into your emotional well-being.",
		IsActive: true,
	},
	{
		Type:     models.ContentLoginMessage,
		Title:    "Login Welcome Message",
		Body:     "Welcome back to MoodyMe! We're glad to see you again. Continue tracking your mood, explore your insights, and stay connected with your emotional well-being journey. Let's see how you're feeling today!",
		IsActive: true,
	},
}

// SeedContentPages inserts the default pages for any content type that does
// not have a row yet. Existing pages are never overwritten.
func SeedContentPages(db *gorm.DB) error {
	log := mmlog.L.Named("SeedContentPages")

	for _, page := range defaultContentPages {
		var existing models.Content
		err := db.Where("type = ?", page.Type).First(&existing).Error
		if err == nil {
			continue
		}
		if err != gorm.ErrRecordNotFound {
			return err
		}
		if err := db.Create(&page).Error; err != nil {
			return err
		}
		log.Info("Created content page",
			zap.String("type", string(page.Type)),
			zap.String("title", page.Title))
	}
	return nil
}
