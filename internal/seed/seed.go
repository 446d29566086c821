package seed

import (
	"context"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"github.com/grad-konnect/showcase-api/internal/models"
	"github.com/grad-konnect/showcase-api/internal/repository"
)

// demoPassword is shared by every demo account.
const demoPassword = "password123"

type demoPost struct {
	handle          string
	title           string
	content         string
	imageURL        string
	hashtags        []string
	likes           int
	shares          int
	livePreviewURL  string
	githubURL       string
	status          models.PostStatus
	rejectionReason string
	age             time.Duration
	comments        []demoComment
}

type demoComment struct {
	handle string
	text   string
	age    time.Duration
}

// Seeder loads the demo dataset into an empty database.
type Seeder struct {
	db     *sqlx.DB
	users  *repository.UserRepository
	scores *repository.LeaderboardRepository
	logger *zap.Logger
}

// New creates a Seeder.
func New(db *sqlx.DB, users *repository.UserRepository, scores *repository.LeaderboardRepository, logger *zap.Logger) *Seeder {
	return &Seeder{db: db, users: users, scores: scores, logger: logger}
}

// Run populates users, posts, comments and score tables. It is idempotent:
// when any users already exist the seed is skipped entirely.
func (s *Seeder) Run(ctx context.Context) error {
	count, err := s.users.Count(ctx)
	if err != nil {
		return fmt.Errorf("seed precheck: %w", err)
	}
	if count > 0 {
		s.logger.Info("seed skipped, database already populated", zap.Int("users", count))
		return nil
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(demoPassword), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("hash demo password: %w", err)
	}

	if err := s.seedUsers(ctx, string(hash)); err != nil {
		return err
	}
	if err := s.seedPosts(ctx); err != nil {
		return err
	}
	if err := s.seedScores(ctx); err != nil {
		return err
	}

	s.logger.Info("demo dataset seeded")
	return nil
}

func (s *Seeder) seedUsers(ctx context.Context, passwordHash string) error {
	strPtr := func(v string) *string { return &v }
	intPtr := func(v int) *int { return &v }

	users := []models.User{
		{
			Handle: "pixel_pioneer", Name: "Priya Sharma",
			AvatarURL:  "https://images.pexels.com/photos/415829/pexels-photo-415829.jpeg?auto=compress&cs=tinysrgb&w=100&h=100&fit=crop&dpr=2",
			Bio:        "UI/UX enthusiast and frontend developer. Turning coffee into clean code and beautiful interfaces. 🎨",
			Year:       strPtr("3rd Year"), Department: "CSE", Role: models.RoleStudent, PostsCount: 3,
			Email: "priya.sharma@example.com",
		},
		{
			Handle: "data_dynamo", Name: "Ben Carter",
			AvatarURL:  "https://images.pexels.com/photos/2379004/pexels-photo-2379004.jpeg?auto=compress&cs=tinysrgb&w=100&h=100&fit=crop&dpr=2",
			Bio:        "Deep learning aficionado and data scientist in the making. Exploring the world, one dataset at a time.",
			Year:       strPtr("4th Year"), Department: "AIDS", Role: models.RoleStudent, PostsCount: 1,
			Email: "ben.carter@example.com",
		},
		{
			Handle: "logic_lord", Name: "Kenji Tanaka",
			AvatarURL:  "https://images.pexels.com/photos/220453/pexels-photo-220453.jpeg?auto=compress&cs=tinysrgb&w=100&h=100&fit=crop&dpr=2",
			Bio:        "Competitive programmer and backend developer. I speak fluent Python, Java, and sarcasm.",
			Year:       strPtr("3rd Year"), Department: "IT", Role: models.RoleStudent, PostsCount: 2,
			Email: "kenji.tanaka@example.com",
		},
		{
			Handle: "cyber_sleuth", Name: "Aisha Khan",
			AvatarURL:  "https://images.pexels.com/photos/1043473/pexels-photo-1043473.jpeg?auto=compress&cs=tinysrgb&w=100&h=100&fit=crop&dpr=2",
			Bio:        "Cybersecurity student passionate about ethical hacking and network security. Securing the digital world.",
			Year:       strPtr("2nd Year"), Department: "ACSE", Role: models.RoleStudent, PostsCount: 1,
			Email: "aisha.khan@example.com",
		},
		{
			Handle: "quantum_quark", Name: "Sam Rodriguez",
			AvatarURL:  "https://images.pexels.com/photos/774909/pexels-photo-774909.jpeg?auto=compress&cs=tinysrgb&w=100&h=100&fit=crop&dpr=2",
			Bio:        "Exploring the intersection of quantum computing and machine learning. Future is now.",
			Year:       strPtr("1st Year"), Department: "CSE", Role: models.RoleStudent, PostsCount: 1,
			Email: "sam.rodriguez@example.com",
		},
		{
			Handle: "prof_davinci", Name: "Dr. Alistair Finch",
			AvatarURL:  "https://images.pexels.com/photos/91227/pexels-photo-91227.jpeg?auto=compress&cs=tinysrgb&w=100&h=100&fit=crop&dpr=2",
			Bio:        "Professor in Computer Science with a focus on Human-Computer Interaction. Guiding the next generation of innovators.",
			Department: "CSE", Role: models.RoleMentor, Mentees: intPtr(8), Rating: strPtr("99.1"),
			Email: "a.finch@example.com",
		},
		{
			Handle: "madam_curie", Name: "Dr. Lena Petrova",
			AvatarURL:  "https://images.pexels.com/photos/775201/pexels-photo-775201.jpeg?auto=compress&cs=tinysrgb&w=100&h=100&fit=crop&dpr=2",
			Bio:        "AI & ML Research Scientist. Passionate about pushing the boundaries of artificial intelligence.",
			Department: "AIDS", Role: models.RoleMentor, Mentees: intPtr(6), Rating: strPtr("98.5"),
			Email: "l.petrova@example.com",
		},
		{
			Handle: "sir_turing", Name: "Dr. Omar Bakshi",
			AvatarURL:  "https://images.pexels.com/photos/837358/pexels-photo-837358.jpeg?auto=compress&cs=tinysrgb&w=100&h=100&fit=crop&dpr=2",
			Bio:        "Lead Software Architect with 15 years of industry experience. Building scalable systems.",
			Department: "IT", Role: models.RoleMentor, Mentees: intPtr(12), Rating: strPtr("97.8"),
			Email: "o.bakshi@example.com",
		},
		{
			Handle: "ada_lovelace", Name: "Dr. Isabella Rossi",
			AvatarURL:  "https://images.pexels.com/photos/762020/pexels-photo-762020.jpeg?auto=compress&cs=tinysrgb&w=100&h=100&fit=crop&dpr=2",
			Bio:        "Cybersecurity expert and author. Mentoring students on defensive and offensive security strategies.",
			Department: "ACSE", Role: models.RoleMentor, Mentees: intPtr(9), Rating: strPtr("99.5"),
			Email: "i.rossi@example.com",
		},
	}

	for i := range users {
		users[i].PasswordHash = passwordHash
		if err := s.users.Create(ctx, &users[i]); err != nil {
			return fmt.Errorf("seed user %s: %w", users[i].Handle, err)
		}
	}
	return nil
}

func (s *Seeder) seedPosts(ctx context.Context) error {
	posts := []demoPost{
		{
			handle: "pixel_pioneer", title: "Project Vision: A Real-time Object Detection App",
			content:  "Just deployed the v1 of my object detection app! It uses YOLOv8 and React Native to provide real-time object identification through your phone's camera. The goal is to assist visually impaired users. It was a challenge to optimize for mobile, but the results are promising. Any feedback on the UI/UX would be amazing!",
			imageURL: "https://images.pexels.com/photos/5926382/pexels-photo-5926382.jpeg?auto=compress&cs=tinysrgb&w=800",
			hashtags: []string{"#ReactNative", "#AI", "#ComputerVision", "#YOLO"},
			likes:    125, shares: 18, livePreviewURL: "#", githubURL: "#",
			status: models.PostApproved, age: 48 * time.Hour,
			comments: []demoComment{
				{handle: "logic_lord", text: "This is sick! The performance on mobile must have been tough. Great job!", age: 24 * time.Hour},
				{handle: "prof_davinci", text: "Excellent work, Priya. The application of computer vision for accessibility is a fantastic initiative. Let's connect to discuss how we can refine the user flow for a better experience. I have a few ideas.", age: 24 * time.Hour},
			},
		},
		{
			handle: "data_dynamo", title: "Stock Price Prediction with LSTMs",
			content:  "Spent the last month building an LSTM model to predict stock prices. The model is trained on a decade of historical data and considers various market indicators. While it's not a crystal ball, the accuracy on the test set is over 85%. The biggest hurdle was feature engineering. Check out the GitHub repo for the code and a detailed report.",
			imageURL: "https://images.pexels.com/photos/7567443/pexels-photo-7567443.jpeg?auto=compress&cs=tinysrgb&w=800",
			hashtags: []string{"#MachineLearning", "#DataScience", "#LSTM", "#Finance"},
			likes:    240, shares: 45, githubURL: "#",
			status: models.PostApproved, age: 5 * 24 * time.Hour,
			comments: []demoComment{
				{handle: "madam_curie", text: "Impressive accuracy, Ben. Have you considered incorporating sentiment analysis from news articles as a feature? It could capture market volatility more effectively. Happy to share some resources if you're interested.", age: 4 * 24 * time.Hour},
				{handle: "pixel_pioneer", text: "Wow, this is next level! The visualizations in your report are top-notch.", age: 3 * 24 * time.Hour},
			},
		},
		{
			handle: "logic_lord", title: "My Personal Portfolio Website",
			content:  `Finally launched my new portfolio! Built with Next.js, Framer Motion for the animations, and Tailwind CSS for styling. It features a custom blog, project showcase, and a slick terminal-style "about me" section. Let me know what you think!`,
			imageURL: "https://images.pexels.com/photos/169573/pexels-photo-169573.jpeg?auto=compress&cs=tinysrgb&w=800",
			hashtags: []string{"#Nextjs", "#WebDev", "#Portfolio", "#FramerMotion"},
			likes:    58, shares: 7, livePreviewURL: "#", githubURL: "#",
			status: models.PostPending, age: 8 * time.Hour,
		},
		{
			handle: "quantum_quark", title: "Exploring Quantum Gates with Qiskit",
			content:  "As a first-year, I wanted to dive into something challenging. I've started learning quantum computing with IBM's Qiskit. This is a simple simulation of Bell's state and quantum entanglement. It's mind-bending stuff, but super exciting! Any other quantum enthusiasts here?",
			imageURL: "https://images.pexels.com/photos/546819/pexels-photo-546819.jpeg?auto=compress&cs=tinysrgb&w=800",
			hashtags: []string{"#QuantumComputing", "#Qiskit", "#Physics", "#Beginner"},
			likes:    95, shares: 12, livePreviewURL: "#", githubURL: "#",
			status: models.PostApproved, age: 24 * time.Hour,
			comments: []demoComment{
				{handle: "prof_davinci", text: "Fantastic initiative for a first-year student, Sam! Keep up the curiosity. This is a solid start.", age: 10 * time.Hour},
			},
		},
		{
			handle: "cyber_sleuth", title: "Building a Simple Keylogger for Educational Purposes",
			content:  "To better understand keyboard event handling and potential security vulnerabilities, I created a simple keylogger in Python. **Disclaimer: This is for educational purposes only.** It logs keystrokes to a local file. The project helped me understand how malware can operate. The code is available on GitHub.",
			imageURL: "https://images.pexels.com/photos/270348/pexels-photo-270348.jpeg?auto=compress&cs=tinysrgb&w=800",
			hashtags: []string{"#Cybersecurity", "#Python", "#EthicalHacking", "#Security"},
			likes:    150, shares: 30, githubURL: "#",
			status: models.PostApproved, age: 3 * 24 * time.Hour,
			comments: []demoComment{
				{handle: "ada_lovelace", text: "A great way to learn, Aisha. Understanding the attacker's tools is the first step to building strong defenses. Ensure your repository has a clear disclaimer about its educational nature.", age: 2 * 24 * time.Hour},
			},
		},
		{
			handle: "pixel_pioneer", title: "3D Portfolio with Three.js",
			content:  "WIP! Trying my hand at 3D web experiences with Three.js and React Three Fiber. Building an interactive portfolio where users can navigate a 3D space to view my projects. It's a steep learning curve but so rewarding when you see it come to life.",
			imageURL: "https://images.pexels.com/photos/1779487/pexels-photo-1779487.jpeg?auto=compress&cs=tinysrgb&w=800",
			hashtags: []string{"#Threejs", "#ReactThreeFiber", "#3D", "#Webgl"},
			likes:    32, shares: 4, livePreviewURL: "#", githubURL: "#",
			status: models.PostPending, age: time.Hour,
		},
		{
			handle: "logic_lord", title: "Minimalist Weather App",
			content:  "I built a simple weather app using a public API. It shows the current weather, but I feel like the design is too plain. Looking for feedback on how to make it more engaging visually.",
			imageURL: "https://images.pexels.com/photos/1118873/pexels-photo-1118873.jpeg?auto=compress&cs=tinysrgb&w=800",
			hashtags: []string{"#API", "#WebDev", "#UIUX", "#FeedbackNeeded"},
			likes:    15, shares: 2, livePreviewURL: "#", githubURL: "#",
			status: models.PostRejected, age: 3 * 24 * time.Hour,
			rejectionReason: "The project is a good start, but the UI feels a bit generic. Consider adding more unique visual elements or animations. Also, the code lacks comments, making it hard to review. Please add documentation and resubmit.",
		},
		{
			handle: "pixel_pioneer", title: "Concept for a Social Music App",
			content:  "Drafting out a concept for a social music discovery app. The idea is to create collaborative playlists in real-time. I've only done some mockups in Figma, no code yet. Is this an idea worth pursuing?",
			imageURL: "https://images.pexels.com/photos/164821/pexels-photo-164821.jpeg?auto=compress&cs=tinysrgb&w=800",
			hashtags: []string{"#Concept", "#UIUX", "#Figma", "#Social"},
			likes:    5, shares: 1,
			status: models.PostRejected, age: 5 * 24 * time.Hour,
			rejectionReason: "Great idea, Priya! However, this submission is for a concept/mockup and not a coded project. GRAD KONNECT is focused on showcasing implemented projects. Please build out a prototype and resubmit. Looking forward to seeing it!",
		},
	}

	const postQuery = `INSERT INTO posts (user_handle, title, content, image_url, hashtags, likes, comments, shares, live_preview_url, github_url, status, rejection_reason, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $13) RETURNING id`
	const commentQuery = `INSERT INTO post_comments (post_id, user_handle, text, created_at) VALUES ($1, $2, $3, $4)`

	now := time.Now().UTC()
	for _, p := range posts {
		var reason *string
		if p.rejectionReason != "" {
			reason = &p.rejectionReason
		}
		createdAt := now.Add(-p.age)

		var id int64
		err := s.db.GetContext(ctx, &id, postQuery,
			p.handle, p.title, p.content, p.imageURL, pq.Array(p.hashtags),
			p.likes, len(p.comments), p.shares, p.livePreviewURL, p.githubURL,
			p.status, reason, createdAt)
		if err != nil {
			return fmt.Errorf("seed post %q: %w", p.title, err)
		}

		for _, c := range p.comments {
			if _, err := s.db.ExecContext(ctx, commentQuery, id, c.handle, c.text, now.Add(-c.age)); err != nil {
				return fmt.Errorf("seed comment on %q: %w", p.title, err)
			}
		}
	}
	return nil
}

func (s *Seeder) seedScores(ctx context.Context) error {
	projects := []models.ProjectScore{
		{Handle: "data_dynamo", Title: "Stock Price Prediction with LSTMs", Score: "28.5k"},
		{Handle: "cyber_sleuth", Title: "Keylogger for Education", Score: "18.0k"},
		{Handle: "pixel_pioneer", Title: "Project Vision", Score: "14.5k"},
		{Handle: "quantum_quark", Title: "Quantum Gates with Qiskit", Score: "10.7k"},
		{Handle: "logic_lord", Title: "Personal Portfolio Website", Score: "6.5k"},
	}
	for _, p := range projects {
		if err := s.scores.SeedProjectScore(ctx, p); err != nil {
			return fmt.Errorf("seed project score: %w", err)
		}
	}

	mentors := []models.MentorScore{
		{Handle: "ada_lovelace", Score: "99.5"},
		{Handle: "prof_davinci", Score: "99.1"},
		{Handle: "madam_curie", Score: "98.5"},
		{Handle: "sir_turing", Score: "97.8"},
	}
	for _, m := range mentors {
		if err := s.scores.SeedMentorScore(ctx, m); err != nil {
			return fmt.Errorf("seed mentor score: %w", err)
		}
	}

	branches := []models.BranchScore{
		{Name: "CSE", Score: "55.2k"},
		{Name: "AIDS", Score: "32.1k"},
		{Name: "ACSE", Score: "28.9k"},
		{Name: "IT", Score: "25.6k"},
	}
	for _, b := range branches {
		if err := s.scores.SeedBranchScore(ctx, b); err != nil {
			return fmt.Errorf("seed branch score: %w", err)
		}
	}

	creators := []models.CreatorScore{
		{Handle: "data_dynamo", Score: "28.5k"},
		{Handle: "cyber_sleuth", Score: "18.0k"},
		{Handle: "pixel_pioneer", Score: "14.5k"},
	}
	for _, c := range creators {
		if err := s.scores.SeedCreatorScore(ctx, c); err != nil {
			return fmt.Errorf("seed creator score: %w", err)
		}
	}
	return nil
}
