package client

import "github.com/MKhiriev/go-project-board/models"

const demoPassword = "Vacancy-Board-2026"

type demoProject struct {
	owner        int
	title        string
	description  string
	technologies []string
	budget       models.Amount
	deadlineDays int
}

type demoVacancy struct {
	project        string
	title          string
	description    string
	requirements   string
	salaryMin      models.Amount
	salaryMax      models.Amount
	employmentType models.EmploymentType
}

var demoUsers = []models.RegisterRequest{
	{Username: "testuser1", Email: "testuser1@example.com", FirstName: "Test1", LastName: "User"},
	{Username: "testuser2", Email: "testuser2@example.com", FirstName: "Test2", LastName: "User"},
	{Username: "testuser3", Email: "testuser3@example.com", FirstName: "Test3", LastName: "User"},
}

var demoProjects = []demoProject{
	{
		owner:        0,
		title:        "E-commerce Platform",
		description:  "Building modern e-commerce platform with microservices architecture",
		technologies: []string{"Python", "Django", "React", "PostgreSQL", "Redis"},
		budget:       150000,
		deadlineDays: 90,
	},
	{
		owner:        1,
		title:        "Food Delivery Mobile App",
		description:  "Developing mobile application for food delivery service",
		technologies: []string{"React Native", "Node.js", "MongoDB", "Socket.io"},
		budget:       80000,
		deadlineDays: 60,
	},
	{
		owner:        2,
		title:        "Data Analytics System",
		description:  "Big Data solution for analyzing user behavior patterns",
		technologies: []string{"Python", "Apache Spark", "Kafka", "Elasticsearch"},
		budget:       200000,
		deadlineDays: 120,
	},
}

var demoVacancies = []demoVacancy{
	{
		project:        "E-commerce Platform",
		title:          "Senior Python Developer",
		description:    "Looking for experienced Python developer to work on backend platform",
		requirements:   "Python 3.8+, Django, PostgreSQL, 3+ years experience",
		salaryMin:      120000,
		salaryMax:      180000,
		employmentType: models.FullTime,
	},
	{
		project:        "Food Delivery Mobile App",
		title:          "React Native Developer",
		description:    "Mobile application developer with React Native expertise",
		requirements:   "React Native, JavaScript/TypeScript, mobile development experience",
		salaryMin:      100000,
		salaryMax:      150000,
		employmentType: models.FullTime,
	},
	{
		project:        "Data Analytics System",
		title:          "Data Engineer",
		description:    "Data engineer for working with large volumes of information",
		requirements:   "Python, Apache Spark, Kafka, Big Data experience",
		salaryMin:      140000,
		salaryMax:      200000,
		employmentType: models.FullTime,
	},
	{
		project:        "E-commerce Platform",
		title:          "Frontend Developer (Intern)",
		description:    "Internship opportunity in frontend development team",
		requirements:   "Basic knowledge of React, HTML, CSS, JavaScript",
		salaryMin:      40000,
		salaryMax:      60000,
		employmentType: models.Internship,
	},
}
